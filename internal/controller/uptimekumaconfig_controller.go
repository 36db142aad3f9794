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
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	monitoringv1alpha1 "github.com/benn447/uptime-kuma/declarative/api/v1alpha1"
)

const (
	// RequeueInterval is the time to wait before re-checking for drift
	RequeueInterval = 5 * time.Minute

	// RetryInterval is the time to wait after a failed sync
	RetryInterval = 1 * time.Minute

	// ConditionTypeReady indicates the resource is synced with Uptime Kuma
	ConditionTypeReady = "Ready"

	// ReasonConnectionSuccess indicates successful connection
	ReasonConnectionSuccess = "ConnectionSuccess"

	// ReasonConnectionFailed indicates connection failure
	ReasonConnectionFailed = "ConnectionFailed"

	// ReasonSecretNotFound indicates the API key secret was not found
	ReasonSecretNotFound = "SecretNotFound"

	// ReasonInvalidSecret indicates the secret is missing required data
	ReasonInvalidSecret = "InvalidSecret"
)

// UptimeKumaConfigReconciler checks that a config can reach its instance
type UptimeKumaConfigReconciler struct {
	client.Client
	Scheme *runtime.Scheme
}

//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumaconfigs,verbs=get;list;watch;create;update;patch;delete
//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumaconfigs/status,verbs=get;update;patch
//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumaconfigs/finalizers,verbs=update
//+kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch

// Reconcile probes the instance with the configured key and records the
// outcome in status
func (r *UptimeKumaConfigReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)
	logger.Info("Reconciling UptimeKumaConfig")

	config := &monitoringv1alpha1.UptimeKumaConfig{}
	if err := r.Get(ctx, req.NamespacedName, config); err != nil {
		if apierrors.IsNotFound(err) {
			logger.Info("UptimeKumaConfig resource not found, ignoring")
			return ctrl.Result{}, nil
		}
		logger.Error(err, "Failed to get UptimeKumaConfig")
		return ctrl.Result{}, err
	}

	version, reason, probeErr := r.probe(ctx, config)
	if probeErr != nil {
		logger.Error(probeErr, "Uptime Kuma is not reachable", "reason", reason)
		config.Status.Connected = false
		meta.SetStatusCondition(&config.Status.Conditions, readyCondition(config.Generation, metav1.ConditionFalse, reason, probeErr.Error()))
		// Best effort, the retry rewrites it
		_ = r.Status().Update(ctx, config)
		return ctrl.Result{RequeueAfter: RetryInterval}, nil
	}

	now := metav1.Now()
	config.Status.Connected = true
	config.Status.LastConnectionTime = &now
	config.Status.Version = version
	config.Status.ObservedGeneration = config.Generation
	meta.SetStatusCondition(&config.Status.Conditions, readyCondition(config.Generation, metav1.ConditionTrue,
		ReasonConnectionSuccess, fmt.Sprintf("Successfully connected to Uptime Kuma (version %s)", version)))
	if err := r.Status().Update(ctx, config); err != nil {
		logger.Error(err, "Failed to update status")
		return ctrl.Result{}, err
	}

	logger.Info("Successfully validated connection to Uptime Kuma", "version", version)
	return ctrl.Result{RequeueAfter: RequeueInterval}, nil
}

// probe reads the API key and calls the health endpoint. On failure it
// returns the condition reason that matches the error.
func (r *UptimeKumaConfigReconciler) probe(ctx context.Context, config *monitoringv1alpha1.UptimeKumaConfig) (string, string, error) {
	apiKey, err := apiKeyFor(ctx, r.Client, config)
	switch {
	case errors.Is(err, errSecretNotFound):
		return "", ReasonSecretNotFound, err
	case err != nil:
		return "", ReasonInvalidSecret, err
	}

	health, err := newKumaClient(config, apiKey).GetHealth(ctx)
	if err != nil {
		return "", ReasonConnectionFailed, fmt.Errorf("failed to connect to Uptime Kuma: %w", err)
	}
	return health.Version, "", nil
}

// configsForSecret maps a Secret to the configs in its namespace that read
// their API key from it
func (r *UptimeKumaConfigReconciler) configsForSecret(ctx context.Context, obj client.Object) []reconcile.Request {
	var configs monitoringv1alpha1.UptimeKumaConfigList
	if err := r.List(ctx, &configs); err != nil {
		log.FromContext(ctx).Error(err, "Failed to list UptimeKumaConfigs for secret", "secret", obj.GetName())
		return nil
	}

	var requests []reconcile.Request
	for _, config := range configs.Items {
		ref := config.Spec.APIKeySecret
		namespace := ref.Namespace
		if namespace == "" {
			namespace = config.Namespace
		}
		if ref.Name == obj.GetName() && namespace == obj.GetNamespace() {
			requests = append(requests, reconcile.Request{
				NamespacedName: types.NamespacedName{Name: config.Name, Namespace: config.Namespace},
			})
		}
	}
	return requests
}

// SetupWithManager sets up the controller with the Manager. Rotating the
// API key secret triggers a new probe.
func (r *UptimeKumaConfigReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&monitoringv1alpha1.UptimeKumaConfig{}).
		Watches(&corev1.Secret{}, handler.EnqueueRequestsFromMapFunc(r.configsForSecret)).
		Complete(r)
}
