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

// NestedMode values accepted by UptimeKumaConfigSpec.NestedMode
const (
	NestedModeExact  = "exact"
	NestedModeSubset = "subset"
)

// UptimeKumaConfigSpec points the operator at one Uptime Kuma instance
type UptimeKumaConfigSpec struct {
	// APIURL is the base URL of the instance, e.g. http://uptime-kuma:3001
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:Pattern=`^https?://`
	APIURL string `json:"apiUrl"`

	// APIKeySecret holds the API key used for every request
	// +kubebuilder:validation:Required
	APIKeySecret SecretReference `json:"apiKeySecret"`

	// +kubebuilder:default=false
	// +optional
	InsecureSkipVerify bool `json:"insecureSkipVerify,omitempty"`

	// Timeout is the per request timeout in seconds
	// +kubebuilder:default=30
	// +kubebuilder:validation:Minimum=0
	// +optional
	Timeout int `json:"timeout,omitempty"`

	// NestedMode selects how nested mappings in a record are compared.
	// "exact" treats extra observed keys as drift, "subset" only compares
	// the keys the operator declares.
	// +kubebuilder:validation:Enum=exact;subset
	// +kubebuilder:default=exact
	// +optional
	NestedMode string `json:"nestedMode,omitempty"`
}

// SecretReference names a key in a Secret
type SecretReference struct {
	// +kubebuilder:validation:Required
	Name string `json:"name"`

	// Key defaults to "api-key"
	// +kubebuilder:default=api-key
	// +optional
	Key string `json:"key,omitempty"`

	// Namespace defaults to the namespace of the UptimeKumaConfig
	// +optional
	Namespace string `json:"namespace,omitempty"`
}

// UptimeKumaConfigStatus reports whether the instance is reachable
type UptimeKumaConfigStatus struct {
	// Connected is true once the health endpoint answered with the configured key.
	// Group and monitor controllers wait for it.
	// +optional
	Connected bool `json:"connected,omitempty"`

	// LastConnectionTime is kept across failures and marks the last success
	// +optional
	LastConnectionTime *metav1.Time `json:"lastConnectionTime,omitempty"`

	// Version reported by the instance
	// +optional
	Version string `json:"version,omitempty"`

	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:scope=Namespaced,shortName=ukc
//+kubebuilder:printcolumn:name="API URL",type=string,JSONPath=`.spec.apiUrl`
//+kubebuilder:printcolumn:name="Connected",type=boolean,JSONPath=`.status.connected`
//+kubebuilder:printcolumn:name="Version",type=string,JSONPath=`.status.version`
//+kubebuilder:printcolumn:name="Nested",type=string,JSONPath=`.spec.nestedMode`,priority=1
//+kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// UptimeKumaConfig is the connection that UptimeKumaGroup and
// UptimeKumaMonitor objects reference
type UptimeKumaConfig struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   UptimeKumaConfigSpec   `json:"spec,omitempty"`
	Status UptimeKumaConfigStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// UptimeKumaConfigList contains a list of UptimeKumaConfig
type UptimeKumaConfigList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []UptimeKumaConfig `json:"items"`
}

func init() {
	SchemeBuilder.Register(&UptimeKumaConfig{}, &UptimeKumaConfigList{})
}
