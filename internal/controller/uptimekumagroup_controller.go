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
	"strings"

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
)

const (
	groupFinalizerName = "monitoring.uptimekuma.io/group-finalizer"

	// ReasonGroupSynced indicates successful group sync
	ReasonGroupSynced = "GroupSynced"

	// ReasonGroupSyncFailed indicates group sync failure
	ReasonGroupSyncFailed = "GroupSyncFailed"
)

// UptimeKumaGroupReconciler reconciles a UptimeKumaGroup object
type UptimeKumaGroupReconciler struct {
	client.Client
	Scheme *runtime.Scheme
}

//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumagroups,verbs=get;list;watch;create;update;patch;delete
//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumagroups/status,verbs=get;update;patch
//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumagroups/finalizers,verbs=update
//+kubebuilder:rbac:groups=monitoring.uptimekuma.io,resources=uptimekumaconfigs,verbs=get;list;watch

// Reconcile syncs UptimeKumaGroup with Uptime Kuma
func (r *UptimeKumaGroupReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)
	logger.Info("Reconciling UptimeKumaGroup")

	group := &monitoringv1alpha1.UptimeKumaGroup{}
	if err := r.Get(ctx, req.NamespacedName, group); err != nil {
		if apierrors.IsNotFound(err) {
			logger.Info("UptimeKumaGroup resource not found, ignoring")
			return ctrl.Result{}, nil
		}
		logger.Error(err, "Failed to get UptimeKumaGroup")
		return ctrl.Result{}, err
	}

	if !group.ObjectMeta.DeletionTimestamp.IsZero() {
		return r.handleDeletion(ctx, group)
	}

	if !controllerutil.ContainsFinalizer(group, groupFinalizerName) {
		controllerutil.AddFinalizer(group, groupFinalizerName)
		if err := r.Update(ctx, group); err != nil {
			logger.Error(err, "Failed to add finalizer")
			return ctrl.Result{}, err
		}
	}

	kuma, err := connect(ctx, r.Client, group.Namespace, group.Spec.UptimeKumaConfigRef)
	if err != nil {
		logger.Error(err, "Failed to get Uptime Kuma client")
		r.updateStatusError(ctx, group, err)
		return ctrl.Result{RequeueAfter: RetryInterval}, nil
	}

	if err := r.syncGroup(ctx, group, kuma); err != nil {
		logger.Error(err, "Failed to sync group")
		r.updateStatusError(ctx, group, err)
		return ctrl.Result{RequeueAfter: RetryInterval}, nil
	}

	logger.Info("Successfully synced group", "groupId", group.Status.GroupID, "changed", group.Status.ChangedFields)
	return ctrl.Result{RequeueAfter: RequeueInterval}, nil
}

// handleDeletion removes the group from Uptime Kuma before releasing the finalizer
func (r *UptimeKumaGroupReconciler) handleDeletion(ctx context.Context, group *monitoringv1alpha1.UptimeKumaGroup) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	if !controllerutil.ContainsFinalizer(group, groupFinalizerName) {
		return ctrl.Result{}, nil
	}

	switch {
	case group.Status.GroupID == 0:
	case group.Spec.DeletionPolicy == monitoringv1alpha1.DeletionPolicyOrphan:
		logger.Info("Leaving group in Uptime Kuma", "groupId", group.Status.GroupID)
	default:
		logger.Info("Deleting group from Uptime Kuma", "groupId", group.Status.GroupID)

		kuma, err := connect(ctx, r.Client, group.Namespace, group.Spec.UptimeKumaConfigRef)
		if err != nil {
			// Continue with finalizer removal even if client creation fails
			logger.Error(err, "Failed to get Uptime Kuma client for deletion")
		} else {
			// Child monitors are kept
			_, err := kuma.reconciler.Reconcile(ctx, resource.Request{
				Kind:  "group",
				State: resource.StateAbsent,
				Spec:  map[string]any{"id": group.Status.GroupID},
			})
			if err != nil {
				logger.Error(err, "Failed to delete group from Uptime Kuma")
			} else {
				logger.Info("Successfully deleted group from Uptime Kuma")
			}
		}
	}

	controllerutil.RemoveFinalizer(group, groupFinalizerName)
	if err := r.Update(ctx, group); err != nil {
		logger.Error(err, "Failed to remove finalizer")
		return ctrl.Result{}, err
	}

	return ctrl.Result{}, nil
}

// syncGroup creates the group or writes the fields that drifted
func (r *UptimeKumaGroupReconciler) syncGroup(ctx context.Context, group *monitoringv1alpha1.UptimeKumaGroup, kuma *kumaConnection) error {
	spec, err := r.buildGroupSpec(ctx, group)
	if err != nil {
		return err
	}

	res, err := kuma.reconciler.Reconcile(ctx, resource.Request{Kind: "group", Spec: spec})
	if err != nil {
		return err
	}
	if res.Action == resource.ActionCreate {
		log.FromContext(ctx).Info("Created group", "groupId", res.ID)
	}
	group.Status.GroupID = res.ID
	group.Status.ChangedFields = changedFields(res)

	members, err := kuma.client.ListMonitors(ctx, 1, 1, &res.ID)
	if err != nil {
		return fmt.Errorf("failed to count group monitors: %w", err)
	}
	group.Status.MonitorCount = members.Total

	return r.updateStatusSynced(ctx, group)
}

// buildGroupSpec declares the group fields the CR sets
func (r *UptimeKumaGroupReconciler) buildGroupSpec(ctx context.Context, group *monitoringv1alpha1.UptimeKumaGroup) (map[string]any, error) {
	name := group.Spec.GroupName
	if name == "" {
		name = group.Name
	}

	spec := map[string]any{"name": name}
	if group.Status.GroupID != 0 {
		spec["id"] = group.Status.GroupID
	}
	if group.Spec.Description != "" {
		spec["description"] = group.Spec.Description
	}
	if group.Spec.Weight != 0 {
		spec["weight"] = group.Spec.Weight
	}
	if group.Spec.ParentGroup != "" {
		parentID, err := r.resolveParentGroup(ctx, group)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent group: %w", err)
		}
		spec["parent"] = parentID
	}
	return spec, nil
}

// resolveParentGroup returns the GroupID of the parent group. The whole
// ancestor chain is walked so that cycles of any length are refused.
func (r *UptimeKumaGroupReconciler) resolveParentGroup(ctx context.Context, group *monitoringv1alpha1.UptimeKumaGroup) (int, error) {
	var parent *monitoringv1alpha1.UptimeKumaGroup
	chain := []string{group.Name}
	seen := map[string]bool{group.Name: true}

	for name := group.Spec.ParentGroup; name != ""; {
		ancestor := &monitoringv1alpha1.UptimeKumaGroup{}
		if err := r.Get(ctx, client.ObjectKey{Name: name, Namespace: group.Namespace}, ancestor); err != nil {
			if apierrors.IsNotFound(err) {
				return 0, fmt.Errorf("parent group '%s' not found", name)
			}
			return 0, fmt.Errorf("failed to get parent group: %w", err)
		}
		if parent == nil {
			parent = ancestor
		}

		chain = append(chain, name)
		if seen[name] {
			return 0, fmt.Errorf("circular parent reference detected: %s", strings.Join(chain, " -> "))
		}
		seen[name] = true
		name = ancestor.Spec.ParentGroup
	}

	if parent.Status.GroupID == 0 {
		return 0, fmt.Errorf("parent group '%s' has not been synced yet (no GroupID)", parent.Name)
	}
	return parent.Status.GroupID, nil
}

func (r *UptimeKumaGroupReconciler) updateStatusSynced(ctx context.Context, group *monitoringv1alpha1.UptimeKumaGroup) error {
	now := metav1.Now()

	group.Status.LastSyncTime = &now
	group.Status.ObservedGeneration = group.Generation

	meta.SetStatusCondition(&group.Status.Conditions, readyCondition(group.Generation, metav1.ConditionTrue, ReasonGroupSynced,
		fmt.Sprintf("Group synced (GroupID: %d): %s", group.Status.GroupID, describeChanges(group.Status.ChangedFields))))

	return r.Status().Update(ctx, group)
}

func (r *UptimeKumaGroupReconciler) updateStatusError(ctx context.Context, group *monitoringv1alpha1.UptimeKumaGroup, err error) {
	meta.SetStatusCondition(&group.Status.Conditions, readyCondition(group.Generation, metav1.ConditionFalse, ReasonGroupSyncFailed, err.Error()))

	// Best effort status update, ignore errors
	_ = r.Status().Update(ctx, group)
}

// SetupWithManager sets up the controller with the Manager.
func (r *UptimeKumaGroupReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&monitoringv1alpha1.UptimeKumaGroup{}).
		Complete(r)
}
