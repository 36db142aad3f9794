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
	"fmt"
	"strconv"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/pointer"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	monitoringv1alpha1 "github.com/benn447/uptime-kuma/declarative/api/v1alpha1"
)

// Service annotations read by discovery
const (
	AnnotationEnabled        = "monitoring.uptimekuma.io/enabled"
	AnnotationName           = "monitoring.uptimekuma.io/name"
	AnnotationType           = "monitoring.uptimekuma.io/type"
	AnnotationPath           = "monitoring.uptimekuma.io/path"
	AnnotationPort           = "monitoring.uptimekuma.io/port"
	AnnotationInterval       = "monitoring.uptimekuma.io/interval"
	AnnotationGroup          = "monitoring.uptimekuma.io/group"
	AnnotationConfig         = "monitoring.uptimekuma.io/config"
	AnnotationPaused         = "monitoring.uptimekuma.io/paused"
	AnnotationTags           = "monitoring.uptimekuma.io/tags"
	AnnotationStatusCodes    = "monitoring.uptimekuma.io/accepted-status-codes"
	AnnotationDeletionPolicy = "monitoring.uptimekuma.io/deletion-policy"

	DefaultMonitorType = "http"
	DefaultPath        = "/"
	DefaultPortName    = "http"

	discoverySource   = "service-discovery"
	discoveryTagColor = "#9E9E9E"
)

// ServiceReconciler keeps one UptimeKumaMonitor per annotated Service
type ServiceReconciler struct {
	client.Client
	Scheme *runtime.Scheme
}

//+kubebuilder:rbac:groups="",resources=services,verbs=get;list;watch
//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumamonitors,verbs=get;list;watch;create;update;patch;delete

// Reconcile creates, updates or removes the monitor generated for a Service
func (r *ServiceReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)
	logger.Info("Reconciling Service for auto-discovery")

	service := &corev1.Service{}
	if err := r.Get(ctx, req.NamespacedName, service); err != nil {
		if apierrors.IsNotFound(err) {
			// The owner reference removes the generated monitor
			logger.Info("Service not found, skipping")
			return ctrl.Result{}, nil
		}
		logger.Error(err, "Failed to get Service")
		return ctrl.Result{}, err
	}

	current, err := r.discoveredMonitor(ctx, service)
	if err != nil {
		logger.Error(err, "Failed to get monitor")
		return ctrl.Result{}, err
	}

	if !annotationBool(service.Annotations, AnnotationEnabled) {
		if current == nil {
			return ctrl.Result{}, nil
		}
		logger.Info("Deleting monitor as monitoring is disabled", "monitor", current.Name)
		if err := r.Delete(ctx, current); client.IgnoreNotFound(err) != nil {
			logger.Error(err, "Failed to delete monitor")
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	spec, err := monitorSpecFor(service)
	if err != nil {
		logger.Error(err, "Failed to build monitor spec from service")
		return ctrl.Result{}, err
	}

	if current == nil {
		return ctrl.Result{}, r.createMonitor(ctx, service, spec)
	}
	return ctrl.Result{}, r.updateMonitor(ctx, current, spec)
}

// discoveredMonitorName is the name of the monitor generated for service
func discoveredMonitorName(service *corev1.Service) string {
	return service.Name + "-monitor"
}

// discoveredMonitor returns the monitor generated for service, or nil
func (r *ServiceReconciler) discoveredMonitor(ctx context.Context, service *corev1.Service) (*monitoringv1alpha1.UptimeKumaMonitor, error) {
	monitor := &monitoringv1alpha1.UptimeKumaMonitor{}
	err := r.Get(ctx, client.ObjectKey{Name: discoveredMonitorName(service), Namespace: service.Namespace}, monitor)
	if apierrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return monitor, nil
}

func (r *ServiceReconciler) createMonitor(ctx context.Context, service *corev1.Service, spec *monitoringv1alpha1.UptimeKumaMonitorSpec) error {
	logger := log.FromContext(ctx)

	monitor := &monitoringv1alpha1.UptimeKumaMonitor{
		ObjectMeta: metav1.ObjectMeta{
			Name:      discoveredMonitorName(service),
			Namespace: service.Namespace,
			Labels: map[string]string{
				"app.kubernetes.io/managed-by":    "uptime-kuma-operator",
				"monitoring.uptimekuma.io/source": discoverySource,
			},
		},
		Spec: *spec,
	}
	if err := controllerutil.SetControllerReference(service, monitor, r.Scheme); err != nil {
		return fmt.Errorf("failed to set owner reference: %w", err)
	}

	logger.Info("Creating monitor for service", "monitor", monitor.Name)
	if err := r.Create(ctx, monitor); err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}
	return nil
}

// updateMonitor writes the generated spec only when it differs from the
// stored one
func (r *ServiceReconciler) updateMonitor(ctx context.Context, monitor *monitoringv1alpha1.UptimeKumaMonitor, spec *monitoringv1alpha1.UptimeKumaMonitorSpec) error {
	logger := log.FromContext(ctx)

	changes, err := specDiff(&monitor.Spec, spec)
	if err != nil {
		return fmt.Errorf("failed to compare monitor spec: %w", err)
	}
	if changes.Empty() {
		return nil
	}

	logger.Info("Updating monitor for service", "monitor", monitor.Name, "fields", changes.Fields())
	monitor.Spec = *spec
	if err := r.Update(ctx, monitor); err != nil {
		return fmt.Errorf("failed to update monitor: %w", err)
	}
	return nil
}

// monitorSpecFor builds the monitor spec a Service's annotations describe.
// http and keyword monitors check a cluster URL, port and ping monitors
// check the service hostname.
func monitorSpecFor(service *corev1.Service) (*monitoringv1alpha1.UptimeKumaMonitorSpec, error) {
	annotations := service.Annotations
	monitorType := getAnnotation(annotations, AnnotationType, DefaultMonitorType)
	hostname := fmt.Sprintf("%s.%s.svc.cluster.local", service.Name, service.Namespace)

	interval := DefaultMonitorInterval
	if raw := getAnnotation(annotations, AnnotationInterval, ""); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val <= 0 {
			return nil, fmt.Errorf("invalid %s annotation %q", AnnotationInterval, raw)
		}
		interval = val
	}

	policy := getAnnotation(annotations, AnnotationDeletionPolicy, "")
	switch policy {
	case "", monitoringv1alpha1.DeletionPolicyDelete, monitoringv1alpha1.DeletionPolicyOrphan:
	default:
		return nil, fmt.Errorf("invalid %s annotation %q", AnnotationDeletionPolicy, policy)
	}

	tags, err := discoveryTags(service)
	if err != nil {
		return nil, err
	}

	spec := &monitoringv1alpha1.UptimeKumaMonitorSpec{
		Name:                getAnnotation(annotations, AnnotationName, service.Namespace+"/"+service.Name),
		MonitorType:         monitorType,
		Interval:            interval,
		Active:              pointer.Bool(!annotationBool(annotations, AnnotationPaused)),
		Group:               getAnnotation(annotations, AnnotationGroup, ""),
		UptimeKumaConfigRef: getAnnotation(annotations, AnnotationConfig, ""),
		DeletionPolicy:      policy,
		Tags:                tags,
	}

	if monitorType == "ping" {
		spec.Hostname = hostname
		return spec, nil
	}

	port, err := resolvePort(service, getAnnotation(annotations, AnnotationPort, DefaultPortName))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve port: %w", err)
	}
	if monitorType == "port" {
		spec.Hostname = hostname
		spec.Port = pointer.Int(int(port))
		return spec, nil
	}

	spec.URL = fmt.Sprintf("http://%s:%d%s", hostname, port, getAnnotation(annotations, AnnotationPath, DefaultPath))
	// Always set so that dropping the annotation clears the stored codes
	spec.HTTP = &monitoringv1alpha1.HTTPOptions{
		AcceptedStatusCodes: splitList(getAnnotation(annotations, AnnotationStatusCodes, "")),
	}
	return spec, nil
}

// discoveryTags returns the source and namespace tags followed by the
// name=value pairs of the tags annotation
func discoveryTags(service *corev1.Service) ([]monitoringv1alpha1.MonitorTag, error) {
	tags := []monitoringv1alpha1.MonitorTag{
		{Name: "source", Value: discoverySource, Color: "#4CAF50"},
		{Name: "namespace", Value: service.Namespace, Color: "#2196F3"},
	}
	for _, item := range splitList(getAnnotation(service.Annotations, AnnotationTags, "")) {
		name, value, _ := strings.Cut(item, "=")
		if name == "" {
			return nil, fmt.Errorf("invalid %s annotation entry %q", AnnotationTags, item)
		}
		tags = append(tags, monitoringv1alpha1.MonitorTag{Name: name, Value: value, Color: discoveryTagColor})
	}
	return tags, nil
}

// resolvePort accepts a port number or name. A name matching no port falls
// back to the first one.
func resolvePort(service *corev1.Service, portSpec string) (int32, error) {
	if portNum, err := strconv.ParseInt(portSpec, 10, 32); err == nil {
		return int32(portNum), nil
	}

	for _, port := range service.Spec.Ports {
		if port.Name == portSpec {
			return port.Port, nil
		}
	}

	if len(service.Spec.Ports) > 0 {
		return service.Spec.Ports[0].Port, nil
	}

	return 0, fmt.Errorf("no ports found on service")
}

func getAnnotation(annotations map[string]string, key, defaultValue string) string {
	if val, ok := annotations[key]; ok {
		return val
	}
	return defaultValue
}

func annotationBool(annotations map[string]string, key string) bool {
	v, _ := strconv.ParseBool(annotations[key])
	return v
}

// splitList splits a comma separated annotation, dropping empty entries
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// SetupWithManager sets up the controller with the Manager.
func (r *ServiceReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&corev1.Service{}).
		Owns(&monitoringv1alpha1.UptimeKumaMonitor{}).
		Complete(r)
}
