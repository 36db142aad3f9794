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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DeletionPolicy values shared by UptimeKumaGroup and UptimeKumaMonitor
const (
	// DeletionPolicyDelete removes the Uptime Kuma record with the CR
	DeletionPolicyDelete = "Delete"
	// DeletionPolicyOrphan leaves the Uptime Kuma record in place
	DeletionPolicyOrphan = "Orphan"
)

// UptimeKumaGroupSpec declares a monitor group
type UptimeKumaGroupSpec struct {
	// GroupName is the name shown in Uptime Kuma. The CR name is used when empty.
	// +optional
	GroupName string `json:"groupName,omitempty"`

	// +optional
	Description string `json:"description,omitempty"`

	// Weight orders groups, lowest first
	// +kubebuilder:default=1000
	// +optional
	Weight int `json:"weight,omitempty"`

	// ParentGroup is the name of another UptimeKumaGroup in the same namespace
	// +optional
	ParentGroup string `json:"parentGroup,omitempty"`

	// UptimeKumaConfigRef defaults to "uptime-kuma"
	// +optional
	UptimeKumaConfigRef string `json:"uptimeKumaConfigRef,omitempty"`

	// DeletionPolicy decides what happens to the group when the CR goes away
	// +kubebuilder:validation:Enum=Delete;Orphan
	// +kubebuilder:default=Delete
	// +optional
	DeletionPolicy string `json:"deletionPolicy,omitempty"`
}

// UptimeKumaGroupStatus is the last observed state of the group
type UptimeKumaGroupStatus struct {
	// GroupID is the id of the group monitor in Uptime Kuma
	// +optional
	GroupID int `json:"groupId,omitempty"`

	// MonitorCount counts the monitors whose parent is this group
	// +optional
	MonitorCount int `json:"monitorCount,omitempty"`

	// ChangedFields lists the fields the last sync wrote. Empty when the
	// group already matched.
	// +optional
	ChangedFields []string `json:"changedFields,omitempty"`

	// +optional
	LastSyncTime *metav1.Time `json:"lastSyncTime,omitempty"`

	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:scope=Namespaced,shortName=ukg
//+kubebuilder:printcolumn:name="Group ID",type=integer,JSONPath=`.status.groupId`
//+kubebuilder:printcolumn:name="Monitors",type=integer,JSONPath=`.status.monitorCount`
//+kubebuilder:printcolumn:name="Parent",type=string,JSONPath=`.spec.parentGroup`
//+kubebuilder:printcolumn:name="Changed",type=string,JSONPath=`.status.changedFields`,priority=1
//+kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// UptimeKumaGroup is a group monitor in Uptime Kuma
type UptimeKumaGroup struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   UptimeKumaGroupSpec   `json:"spec,omitempty"`
	Status UptimeKumaGroupStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// UptimeKumaGroupList contains a list of UptimeKumaGroup
type UptimeKumaGroupList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []UptimeKumaGroup `json:"items"`
}

func init() {
	SchemeBuilder.Register(&UptimeKumaGroup{}, &UptimeKumaGroupList{})
}
