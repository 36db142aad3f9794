/*
Copyright 2026 Ben.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	monitoringv1alpha1 "github.com/benn447/uptime-kuma/declarative/api/v1alpha1"
	"github.com/benn447/uptime-kuma/declarative/internal/resource"
	uptimeclient "github.com/benn447/uptime-kuma/declarative/pkg/client"
	"github.com/benn447/uptime-kuma/declarative/pkg/reconcile"
)

const (
	// DefaultConfigName is the UptimeKumaConfig used when a resource names none
	DefaultConfigName = "uptime-kuma"

	// DefaultAPIKeyName is the secret key holding the API key
	DefaultAPIKeyName = "api-key"
)

var (
	errSecretNotFound = errors.New("secret not found")
	errInvalidSecret  = errors.New("invalid secret")
)

// kumaConnection talks to the Uptime Kuma instance behind one UptimeKumaConfig
type kumaConnection struct {
	client     *uptimeclient.Client
	reconciler *resource.Reconciler
}

// connect resolves configRef in namespace and returns a connection to the
// instance it points at. The config must have connected at least once.
func connect(ctx context.Context, c client.Client, namespace, configRef string) (*kumaConnection, error) {
	if configRef == "" {
		configRef = DefaultConfigName
	}

	config := &monitoringv1alpha1.UptimeKumaConfig{}
	if err := c.Get(ctx, client.ObjectKey{Name: configRef, Namespace: namespace}, config); err != nil {
		if apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("UptimeKumaConfig '%s' not found in namespace '%s'", configRef, namespace)
		}
		return nil, fmt.Errorf("failed to get UptimeKumaConfig: %w", err)
	}

	if !config.Status.Connected {
		return nil, fmt.Errorf("UptimeKumaConfig '%s' is not connected", configRef)
	}

	apiKey, err := apiKeyFor(ctx, c, config)
	if err != nil {
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	kc := newKumaClient(config, apiKey)
	registry, err := resource.DefaultRegistry(kc, nil)
	if err != nil {
		return nil, err
	}
	mode := reconcile.NestedExact
	if config.Spec.NestedMode == monitoringv1alpha1.NestedModeSubset {
		mode = reconcile.NestedSubset
	}
	return &kumaConnection{
		client:     kc,
		reconciler: resource.NewReconciler(registry, resource.WithNestedMode(mode)),
	}, nil
}

// newKumaClient builds an API client from the config spec
func newKumaClient(config *monitoringv1alpha1.UptimeKumaConfig, apiKey string) *uptimeclient.Client {
	return uptimeclient.NewClient(uptimeclient.Config{
		BaseURL:            config.Spec.APIURL,
		APIKey:             apiKey,
		InsecureSkipVerify: config.Spec.InsecureSkipVerify,
		Timeout:            time.Duration(config.Spec.Timeout) * time.Second,
	})
}

// apiKeyFor fetches the API key from the Secret the config references
func apiKeyFor(ctx context.Context, c client.Reader, config *monitoringv1alpha1.UptimeKumaConfig) (string, error) {
	secretRef := config.Spec.APIKeySecret

	secretNamespace := secretRef.Namespace
	if secretNamespace == "" {
		secretNamespace = config.Namespace
	}
	keyName := secretRef.Key
	if keyName == "" {
		keyName = DefaultAPIKeyName
	}

	secret := &corev1.Secret{}
	if err := c.Get(ctx, types.NamespacedName{Name: secretRef.Name, Namespace: secretNamespace}, secret); err != nil {
		if apierrors.IsNotFound(err) {
			return "", fmt.Errorf("%w: %s/%s", errSecretNotFound, secretNamespace, secretRef.Name)
		}
		return "", fmt.Errorf("failed to get secret: %w", err)
	}

	apiKey, ok := secret.Data[keyName]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s does not contain key '%s'", errInvalidSecret, secretNamespace, secretRef.Name, keyName)
	}
	if len(apiKey) == 0 {
		return "", fmt.Errorf("%w: API key in %s/%s is empty", errInvalidSecret, secretNamespace, secretRef.Name)
	}

	return string(apiKey), nil
}

// readyCondition builds the Ready condition for generation
func readyCondition(generation int64, status metav1.ConditionStatus, reason, message string) metav1.Condition {
	return metav1.Condition{
		Type:               ConditionTypeReady,
		Status:             status,
		ObservedGeneration: generation,
		LastTransitionTime: metav1.Now(),
		Reason:             reason,
		Message:            message,
	}
}

// describeChanges renders the fields a sync wrote for a condition message
func describeChanges(fields []string) string {
	if len(fields) == 0 {
		return "up to date"
	}
	return "updated " + strings.Join(fields, ", ")
}

// changedFields lists the fields of every result, in order and without duplicates
func changedFields(results ...*resource.Result) []string {
	var fields []string
	seen := map[string]bool{}
	for _, res := range results {
		if res == nil {
			continue
		}
		names := res.ChangeSet.Fields()
		if res.Action == resource.ActionPause || res.Action == resource.ActionResume {
			names = append(names, "active")
		}
		for _, f := range names {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	return fields
}

// specDiff reports which fields of a generated spec differ from the stored one
func specDiff(stored, generated any) (reconcile.ChangeSet, error) {
	return reconcile.DiffRecords(stored, generated, nil)
}
