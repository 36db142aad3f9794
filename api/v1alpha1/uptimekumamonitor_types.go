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

// UptimeKumaMonitorSpec defines the desired state of UptimeKumaMonitor
type UptimeKumaMonitorSpec struct {
	// Name is the display name of the monitor in Uptime Kuma
	// Defaults to the CR name if not specified
	// +optional
	Name string `json:"name,omitempty"`

	// MonitorType is the Uptime Kuma monitor type
	// +kubebuilder:validation:Enum=http;keyword;json-query;ping;port;dns;docker;push;mqtt;postgres;mysql;redis;group
	// +kubebuilder:default=http
	MonitorType string `json:"type"`

	// URL to check, for http, keyword and json-query monitors
	// +optional
	URL string `json:"url,omitempty"`

	// Hostname to check, for ping, port and dns monitors
	// +optional
	Hostname string `json:"hostname,omitempty"`

	// +optional
	Port *int `json:"port,omitempty"`

	// Interval between checks in seconds
	// +kubebuilder:validation:Minimum=20
	// +kubebuilder:default=60
	// +optional
	Interval int `json:"interval,omitempty"`

	// RetryInterval between checks in seconds while the monitor is failing
	// +optional
	RetryInterval int `json:"retryInterval,omitempty"`

	// MaxRetries before the monitor is marked down
	// +optional
	MaxRetries int `json:"maxRetries,omitempty"`

	// +optional
	Description string `json:"description,omitempty"`

	// Active pauses the monitor when false. Unset means active.
	// +kubebuilder:default=true
	// +optional
	Active *bool `json:"active,omitempty"`

	// Group references an UptimeKumaGroup in the same namespace
	// +optional
	Group string `json:"group,omitempty"`

	// Tags attached to the monitor. Missing tags are created.
	// +optional
	Tags []MonitorTag `json:"tags,omitempty"`

	// HTTP options for http, keyword and json-query monitors
	// +optional
	HTTP *HTTPOptions `json:"http,omitempty"`

	// UptimeKumaConfigRef references the UptimeKumaConfig to use
	// +optional
	UptimeKumaConfigRef string `json:"uptimeKumaConfigRef,omitempty"`

	// DeletionPolicy decides what happens to the monitor when the CR goes away
	// +kubebuilder:validation:Enum=Delete;Orphan
	// +kubebuilder:default=Delete
	// +optional
	DeletionPolicy string `json:"deletionPolicy,omitempty"`
}

// IsActive reports whether the monitor should be running
func (s *UptimeKumaMonitorSpec) IsActive() bool {
	return s.Active == nil || *s.Active
}

// MonitorTag is a tag and value attached to a monitor
type MonitorTag struct {
	// +kubebuilder:validation:Required
	Name string `json:"name"`

	// +optional
	Value string `json:"value,omitempty"`

	// Color used when the tag has to be created
	// +kubebuilder:validation:Pattern=`^#[0-9a-fA-F]{6}$`
	// +optional
	Color string `json:"color,omitempty"`
}

// HTTPOptions configures HTTP based monitors
type HTTPOptions struct {
	// +kubebuilder:validation:Enum=GET;POST;PUT;PATCH;DELETE;HEAD;OPTIONS
	// +optional
	Method string `json:"method,omitempty"`

	// +optional
	Body string `json:"body,omitempty"`

	// +optional
	Headers map[string]string `json:"headers,omitempty"`

	// AcceptedStatusCodes such as "200-299" or "301"
	// +optional
	AcceptedStatusCodes []string `json:"acceptedStatusCodes,omitempty"`

	// IgnoreTLS is sent as false when unset
	// +optional
	IgnoreTLS *bool `json:"ignoreTls,omitempty"`

	// +optional
	MaxRedirects *int `json:"maxRedirects,omitempty"`
}

// UptimeKumaMonitorStatus defines the observed state of UptimeKumaMonitor
type UptimeKumaMonitorStatus struct {
	// MonitorID is the ID of the monitor in Uptime Kuma
	// +optional
	MonitorID int `json:"monitorId,omitempty"`

	// Status is the last reported state: up, down, pending, maintenance or paused
	// +optional
	Status string `json:"status,omitempty"`

	// +optional
	UptimeStats *UptimeStats `json:"uptimeStats,omitempty"`

	// ChangedFields lists the fields written by the last sync
	// +optional
	ChangedFields []string `json:"changedFields,omitempty"`

	// LastSyncTime is the last time the monitor was synced
	// +optional
	LastSyncTime *metav1.Time `json:"lastSyncTime,omitempty"`

	// Conditions represent the latest available observations of the monitor's state
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// ObservedGeneration reflects the generation of the most recently observed spec
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
}

// UptimeStats are the uptime figures reported by Uptime Kuma, as percentages
// and milliseconds rendered to strings
type UptimeStats struct {
	// +optional
	Uptime24h string `json:"uptime24h,omitempty"`
	// +optional
	Uptime30d string `json:"uptime30d,omitempty"`
	// +optional
	AvgPing string `json:"avgPing,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:scope=Namespaced,shortName=ukm
//+kubebuilder:printcolumn:name="Monitor ID",type=integer,JSONPath=`.status.monitorId`
//+kubebuilder:printcolumn:name="Type",type=string,JSONPath=`.spec.type`
//+kubebuilder:printcolumn:name="Status",type=string,JSONPath=`.status.status`
//+kubebuilder:printcolumn:name="Uptime 24h",type=string,JSONPath=`.status.uptimeStats.uptime24h`
//+kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// UptimeKumaMonitor is the Schema for the uptimekumamonitors API
type UptimeKumaMonitor struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   UptimeKumaMonitorSpec   `json:"spec,omitempty"`
	Status UptimeKumaMonitorStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// UptimeKumaMonitorList contains a list of UptimeKumaMonitor
type UptimeKumaMonitorList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []UptimeKumaMonitor `json:"items"`
}

func init() {
	SchemeBuilder.Register(&UptimeKumaMonitor{}, &UptimeKumaMonitorList{})
}
