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
	"encoding/json"
	"fmt"
	"strconv"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	monitoringv1alpha1 "github.com/benn447/uptime-kuma/declarative/api/v1alpha1"
	"github.com/benn447/uptime-kuma/declarative/internal/resource"
	uptimeclient "github.com/benn447/uptime-kuma/declarative/pkg/client"
)

const (
	monitorFinalizerName = "monitoring.uptimekuma.io/monitor-finalizer"

	// ReasonMonitorSynced indicates successful monitor sync
	ReasonMonitorSynced = "MonitorSynced"

	// ReasonMonitorSyncFailed indicates monitor sync failure
	ReasonMonitorSyncFailed = "MonitorSyncFailed"

	// DefaultMonitorInterval is the default check interval in seconds
	DefaultMonitorInterval = 60
)

// UptimeKumaMonitorReconciler reconciles a UptimeKumaMonitor object
type UptimeKumaMonitorReconciler struct {
	client.Client
	Scheme *runtime.Scheme
}

//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumamonitors,verbs=get;list;watch;create;update;patch;delete
//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumamonitors/status,verbs=get;update;patch
//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumamonitors/finalizers,verbs=update
//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumaconfigs,verbs=get;list;watch
//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumagroups,verbs=get;list;watch

// Reconcile syncs UptimeKumaMonitor with Uptime Kuma
func (r *UptimeKumaMonitorReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)
	logger.Info("Reconciling UptimeKumaMonitor")

	monitor := &monitoringv1alpha1.UptimeKumaMonitor{}
	if err := r.Get(ctx, req.NamespacedName, monitor); err != nil {
		if apierrors.IsNotFound(err) {
			logger.Info("UptimeKumaMonitor resource not found, ignoring")
			return ctrl.Result{}, nil
		}
		logger.Error(err, "Failed to get UptimeKumaMonitor")
		return ctrl.Result{}, err
	}

	if !monitor.ObjectMeta.DeletionTimestamp.IsZero() {
		return r.handleDeletion(ctx, monitor)
	}

	if !controllerutil.ContainsFinalizer(monitor, monitorFinalizerName) {
		controllerutil.AddFinalizer(monitor, monitorFinalizerName)
		if err := r.Update(ctx, monitor); err != nil {
			logger.Error(err, "Failed to add finalizer")
			return ctrl.Result{}, err
		}
	}

	kuma, err := connect(ctx, r.Client, monitor.Namespace, monitor.Spec.UptimeKumaConfigRef)
	if err != nil {
		logger.Error(err, "Failed to get Uptime Kuma client")
		r.updateStatusError(ctx, monitor, err)
		return ctrl.Result{RequeueAfter: RetryInterval}, nil
	}

	if err := r.syncMonitor(ctx, monitor, kuma); err != nil {
		logger.Error(err, "Failed to sync monitor")
		r.updateStatusError(ctx, monitor, err)
		return ctrl.Result{RequeueAfter: RetryInterval}, nil
	}

	logger.Info("Successfully synced monitor", "monitorId", monitor.Status.MonitorID, "changed", monitor.Status.ChangedFields)

	// Requeue after interval for drift detection and status updates
	return ctrl.Result{RequeueAfter: RequeueInterval}, nil
}

// handleDeletion removes the monitor from Uptime Kuma before releasing the finalizer
func (r *UptimeKumaMonitorReconciler) handleDeletion(ctx context.Context, monitor *monitoringv1alpha1.UptimeKumaMonitor) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	if !controllerutil.ContainsFinalizer(monitor, monitorFinalizerName) {
		return ctrl.Result{}, nil
	}

	switch {
	case monitor.Status.MonitorID == 0:
	case monitor.Spec.DeletionPolicy == monitoringv1alpha1.DeletionPolicyOrphan:
		logger.Info("Leaving monitor in Uptime Kuma", "monitorId", monitor.Status.MonitorID)
	default:
		logger.Info("Deleting monitor from Uptime Kuma", "monitorId", monitor.Status.MonitorID)

		kuma, err := connect(ctx, r.Client, monitor.Namespace, monitor.Spec.UptimeKumaConfigRef)
		if err != nil {
			// Continue with finalizer removal even if client creation fails
			logger.Error(err, "Failed to get Uptime Kuma client for deletion")
		} else {
			_, err := kuma.reconciler.Reconcile(ctx, resource.Request{
				Kind:  "monitor",
				State: resource.StateAbsent,
				Spec:  map[string]any{"id": monitor.Status.MonitorID},
			})
			if err != nil {
				// Don't block deletion on API errors
				logger.Error(err, "Failed to delete monitor from Uptime Kuma")
			} else {
				logger.Info("Successfully deleted monitor from Uptime Kuma")
			}
		}
	}

	controllerutil.RemoveFinalizer(monitor, monitorFinalizerName)
	if err := r.Update(ctx, monitor); err != nil {
		logger.Error(err, "Failed to remove finalizer")
		return ctrl.Result{}, err
	}

	return ctrl.Result{}, nil
}

// syncMonitor creates the monitor or writes the fields that drifted, then
// brings its tags and paused state in line
func (r *UptimeKumaMonitorReconciler) syncMonitor(ctx context.Context, monitor *monitoringv1alpha1.UptimeKumaMonitor, kuma *kumaConnection) error {
	logger := log.FromContext(ctx)

	spec, err := r.buildMonitorSpec(ctx, monitor)
	if err != nil {
		return fmt.Errorf("failed to build monitor config: %w", err)
	}

	res, err := kuma.reconciler.Reconcile(ctx, resource.Request{Kind: "monitor", Spec: spec})
	if err != nil {
		return err
	}
	if res.Action == resource.ActionCreate {
		logger.Info("Created monitor", "monitorId", res.ID)
	}
	monitor.Status.MonitorID = res.ID

	tagsAttached, err := r.syncTags(ctx, monitor, spec["name"].(string), kuma)
	if err != nil {
		return err
	}

	state := resource.StateResumed
	if !monitor.Spec.IsActive() {
		state = resource.StatePaused
	}
	toggled, err := kuma.reconciler.Reconcile(ctx, resource.Request{
		Kind:  "monitor",
		State: state,
		Spec:  map[string]any{"id": monitor.Status.MonitorID},
	})
	if err != nil {
		return err
	}

	monitor.Status.ChangedFields = changedFields(res, toggled)
	if tagsAttached {
		monitor.Status.ChangedFields = append(monitor.Status.ChangedFields, "tags")
	}
	return r.updateMonitorStatus(ctx, monitor, kuma.client)
}

// buildMonitorSpec declares the monitor fields the CR sets. Active is left
// out; it is applied by pausing or resuming.
func (r *UptimeKumaMonitorReconciler) buildMonitorSpec(ctx context.Context, monitor *monitoringv1alpha1.UptimeKumaMonitor) (map[string]any, error) {
	name := monitor.Spec.Name
	if name == "" {
		name = monitor.Name
	}
	interval := monitor.Spec.Interval
	if interval == 0 {
		interval = DefaultMonitorInterval
	}
	monitorType := monitor.Spec.MonitorType
	if monitorType == "" {
		monitorType = DefaultMonitorType
	}

	spec := map[string]any{
		"name":     name,
		"type":     monitorType,
		"interval": interval,
	}
	if monitor.Status.MonitorID != 0 {
		spec["id"] = monitor.Status.MonitorID
	}
	setString(spec, "url", monitor.Spec.URL)
	setString(spec, "hostname", monitor.Spec.Hostname)
	// An emptied description is written back
	spec["description"] = monitor.Spec.Description
	if monitor.Spec.Port != nil {
		spec["port"] = *monitor.Spec.Port
	}
	setInt(spec, "retryInterval", monitor.Spec.RetryInterval)
	setInt(spec, "maxretries", monitor.Spec.MaxRetries)

	if h := monitor.Spec.HTTP; h != nil {
		setString(spec, "method", h.Method)
		setString(spec, "body", h.Body)
		if h.MaxRedirects != nil {
			spec["maxredirects"] = *h.MaxRedirects
		}
		spec["ignoreTls"] = h.IgnoreTLS != nil && *h.IgnoreTLS
		if len(h.Headers) > 0 {
			headers, err := json.Marshal(h.Headers)
			if err != nil {
				return nil, fmt.Errorf("failed to encode headers: %w", err)
			}
			spec["headers"] = string(headers)
		}
		if len(h.AcceptedStatusCodes) > 0 {
			codes := make([]any, len(h.AcceptedStatusCodes))
			for i, c := range h.AcceptedStatusCodes {
				codes[i] = c
			}
			spec["accepted_statuscodes"] = codes
		}
	}

	if monitor.Spec.Group != "" {
		parentID, err := r.resolveGroup(ctx, monitor)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve group: %w", err)
		}
		spec["parent"] = parentID
	}

	return spec, nil
}

func setString(spec map[string]any, key, value string) {
	if value != "" {
		spec[key] = value
	}
}

func setInt(spec map[string]any, key string, value int) {
	if value != 0 {
		spec[key] = value
	}
}

// resolveGroup resolves the group name to parent ID
func (r *UptimeKumaMonitorReconciler) resolveGroup(ctx context.Context, monitor *monitoringv1alpha1.UptimeKumaMonitor) (int, error) {
	group := &monitoringv1alpha1.UptimeKumaGroup{}
	if err := r.Get(ctx, client.ObjectKey{
		Name:      monitor.Spec.Group,
		Namespace: monitor.Namespace,
	}, group); err != nil {
		if apierrors.IsNotFound(err) {
			return 0, fmt.Errorf("group '%s' not found", monitor.Spec.Group)
		}
		return 0, fmt.Errorf("failed to get group: %w", err)
	}

	if group.Status.GroupID == 0 {
		return 0, fmt.Errorf("group '%s' has not been synced yet (no GroupID)", monitor.Spec.Group)
	}

	return group.Status.GroupID, nil
}

// syncTags makes sure every declared tag exists and is attached with its
// value, reporting whether anything was attached. Tags dropped from the
// spec stay on the monitor.
func (r *UptimeKumaMonitorReconciler) syncTags(ctx context.Context, monitor *monitoringv1alpha1.UptimeKumaMonitor, monitorName string, kuma *kumaConnection) (bool, error) {
	attached := false
	for _, tag := range monitor.Spec.Tags {
		tagSpec := map[string]any{"name": tag.Name}
		setString(tagSpec, "color", tag.Color)
		if _, err := kuma.reconciler.Reconcile(ctx, resource.Request{Kind: "tag", Spec: tagSpec}); err != nil {
			return false, fmt.Errorf("failed to sync tag %q: %w", tag.Name, err)
		}

		res, err := kuma.reconciler.Reconcile(ctx, resource.Request{Kind: "monitor_tag", Spec: map[string]any{
			"monitor_name": monitorName,
			"tag_name":     tag.Name,
			"value":        tag.Value,
		}})
		if err != nil {
			return false, fmt.Errorf("failed to attach tag %q: %w", tag.Name, err)
		}
		attached = attached || res.Action == resource.ActionCreate
	}
	return attached, nil
}

// updateMonitorStatus fetches status from Uptime Kuma and updates CR status
func (r *UptimeKumaMonitorReconciler) updateMonitorStatus(ctx context.Context, monitor *monitoringv1alpha1.UptimeKumaMonitor, kc *uptimeclient.Client) error {
	now := metav1.Now()

	status, err := kc.GetMonitorStatus(ctx, monitor.Status.MonitorID)
	if err != nil {
		// Don't fail sync on status fetch errors
		monitor.Status.Status = "unknown"
	} else {
		monitor.Status.Status = status.Status
		if status.Uptime24h != nil || status.Uptime30d != nil || status.AvgPing24h != nil {
			monitor.Status.UptimeStats = &monitoringv1alpha1.UptimeStats{
				Uptime24h: formatStat(status.Uptime24h, 2),
				Uptime30d: formatStat(status.Uptime30d, 2),
				AvgPing:   formatStat(status.AvgPing24h, 0),
			}
		}
	}

	monitor.Status.LastSyncTime = &now
	monitor.Status.ObservedGeneration = monitor.Generation

	meta.SetStatusCondition(&monitor.Status.Conditions, readyCondition(monitor.Generation, metav1.ConditionTrue, ReasonMonitorSynced,
		fmt.Sprintf("Monitor synced (MonitorID: %d, Status: %s): %s",
			monitor.Status.MonitorID, monitor.Status.Status, describeChanges(monitor.Status.ChangedFields))))

	return r.Status().Update(ctx, monitor)
}

func formatStat(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}

func (r *UptimeKumaMonitorReconciler) updateStatusError(ctx context.Context, monitor *monitoringv1alpha1.UptimeKumaMonitor, err error) {
	meta.SetStatusCondition(&monitor.Status.Conditions, readyCondition(monitor.Generation, metav1.ConditionFalse, ReasonMonitorSyncFailed, err.Error()))

	// Best effort status update, ignore errors
	_ = r.Status().Update(ctx, monitor)
}

// SetupWithManager sets up the controller with the Manager.
func (r *UptimeKumaMonitorReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&monitoringv1alpha1.UptimeKumaMonitor{}).
		Complete(r)
}
