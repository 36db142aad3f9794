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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	monitoringv1alpha1 "github.com/benn447/uptime-kuma/declarative/api/v1alpha1"
)

var _ = Describe("Service discovery", func() {
	var r *ServiceReconciler

	BeforeEach(func() {
		r = &ServiceReconciler{Client: k8sClient, Scheme: scheme}
	})

	createService := func(annotations map[string]string) *corev1.Service {
		GinkgoHelper()
		service := &corev1.Service{
			ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: namespace, Annotations: annotations},
			Spec: corev1.ServiceSpec{Ports: []corev1.ServicePort{
				{Name: "metrics", Port: 9090},
				{Name: "http", Port: 8080},
			}},
		}
		Expect(k8sClient.Create(ctx, service)).To(Succeed())
		return service
	}

	discover := func() {
		GinkgoHelper()
		_, err := r.Reconcile(ctx, request("web"))
		Expect(err).NotTo(HaveOccurred())
	}

	monitorKey := client.ObjectKey{Name: "web-monitor", Namespace: namespace}

	fetchMonitor := func() *monitoringv1alpha1.UptimeKumaMonitor {
		GinkgoHelper()
		monitor := &monitoringv1alpha1.UptimeKumaMonitor{}
		Expect(k8sClient.Get(ctx, monitorKey, monitor)).To(Succeed())
		return monitor
	}

	It("creates an owned http monitor for an annotated service", func() {
		createService(map[string]string{
			AnnotationEnabled: "true",
			AnnotationPath:    "/healthz",
			AnnotationGroup:   "platform",
		})
		discover()

		monitor := fetchMonitor()
		Expect(monitor.Spec.Name).To(Equal("monitoring/web"))
		Expect(monitor.Spec.MonitorType).To(Equal("http"))
		Expect(monitor.Spec.URL).To(Equal("http://web.monitoring.svc.cluster.local:8080/healthz"))
		Expect(monitor.Spec.Interval).To(Equal(DefaultMonitorInterval))
		Expect(monitor.Spec.Group).To(Equal("platform"))
		Expect(monitor.Spec.Tags).To(ContainElement(monitoringv1alpha1.MonitorTag{Name: "namespace", Value: namespace, Color: "#2196F3"}))
		Expect(monitor.Labels).To(HaveKeyWithValue("monitoring.uptimekuma.io/source", "service-discovery"))
		Expect(monitor.OwnerReferences).To(ConsistOf(HaveField("Name", "web")))
	})

	It("checks host and port for port monitors", func() {
		createService(map[string]string{
			AnnotationEnabled: "true",
			AnnotationType:    "port",
			AnnotationPort:    "metrics",
		})
		discover()

		monitor := fetchMonitor()
		Expect(monitor.Spec.Hostname).To(Equal("web.monitoring.svc.cluster.local"))
		Expect(monitor.Spec.Port).To(HaveValue(Equal(9090)))
		Expect(monitor.Spec.URL).To(BeEmpty())
	})

	It("reads tags, pause state and status codes from annotations", func() {
		createService(map[string]string{
			AnnotationEnabled:        "true",
			AnnotationName:           "Storefront",
			AnnotationPaused:         "true",
			AnnotationTags:           "team=payments, tier",
			AnnotationStatusCodes:    "200-299,301",
			AnnotationDeletionPolicy: monitoringv1alpha1.DeletionPolicyOrphan,
		})
		discover()

		monitor := fetchMonitor()
		Expect(monitor.Spec.Name).To(Equal("Storefront"))
		Expect(monitor.Spec.Active).To(HaveValue(BeFalse()))
		Expect(monitor.Spec.IsActive()).To(BeFalse())
		Expect(monitor.Spec.DeletionPolicy).To(Equal(monitoringv1alpha1.DeletionPolicyOrphan))
		Expect(monitor.Spec.HTTP).NotTo(BeNil())
		Expect(monitor.Spec.HTTP.AcceptedStatusCodes).To(Equal([]string{"200-299", "301"}))
		Expect(monitor.Spec.Tags).To(ContainElements(
			monitoringv1alpha1.MonitorTag{Name: "team", Value: "payments", Color: discoveryTagColor},
			monitoringv1alpha1.MonitorTag{Name: "tier", Color: discoveryTagColor},
		))
	})

	It("rejects an unknown deletion policy", func() {
		createService(map[string]string{AnnotationEnabled: "true", AnnotationDeletionPolicy: "Keep"})

		_, err := r.Reconcile(ctx, request("web"))
		Expect(err).To(MatchError(ContainSubstring("invalid " + AnnotationDeletionPolicy)))
	})

	It("updates the monitor only when the generated spec changes", func() {
		service := createService(map[string]string{AnnotationEnabled: "true"})
		discover()
		version := fetchMonitor().ResourceVersion

		discover()
		Expect(fetchMonitor().ResourceVersion).To(Equal(version))

		service.Annotations[AnnotationInterval] = "120"
		Expect(k8sClient.Update(ctx, service)).To(Succeed())
		discover()
		Expect(fetchMonitor().Spec.Interval).To(Equal(120))
	})

	It("rejects an invalid interval", func() {
		createService(map[string]string{AnnotationEnabled: "true", AnnotationInterval: "often"})

		_, err := r.Reconcile(ctx, request("web"))
		Expect(err).To(MatchError(ContainSubstring("invalid " + AnnotationInterval)))
	})

	It("deletes the monitor when monitoring is disabled", func() {
		service := createService(map[string]string{AnnotationEnabled: "true"})
		discover()
		fetchMonitor()

		service.Annotations[AnnotationEnabled] = "false"
		Expect(k8sClient.Update(ctx, service)).To(Succeed())
		discover()

		err := k8sClient.Get(ctx, monitorKey, &monitoringv1alpha1.UptimeKumaMonitor{})
		Expect(apierrors.IsNotFound(err)).To(BeTrue())
	})

	It("ignores services without the annotation", func() {
		createService(nil)
		discover()

		err := k8sClient.Get(ctx, monitorKey, &monitoringv1alpha1.UptimeKumaMonitor{})
		Expect(apierrors.IsNotFound(err)).To(BeTrue())
	})
})
