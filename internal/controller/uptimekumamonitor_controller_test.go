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
	"encoding/json"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/pointer"
	"sigs.k8s.io/controller-runtime/pkg/client"

	monitoringv1alpha1 "github.com/benn447/uptime-kuma/declarative/api/v1alpha1"
	uptimeclient "github.com/benn447/uptime-kuma/declarative/pkg/client"
)

var _ = Describe("UptimeKumaMonitor controller", func() {
	var r *UptimeKumaMonitorReconciler

	BeforeEach(func() {
		r = &UptimeKumaMonitorReconciler{Client: k8sClient, Scheme: scheme}
	})

	create := func(spec monitoringv1alpha1.UptimeKumaMonitorSpec) {
		GinkgoHelper()
		monitor := &monitoringv1alpha1.UptimeKumaMonitor{
			ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: namespace},
			Spec:       spec,
		}
		Expect(k8sClient.Create(ctx, monitor)).To(Succeed())
	}

	fetch := func() *monitoringv1alpha1.UptimeKumaMonitor {
		GinkgoHelper()
		monitor := &monitoringv1alpha1.UptimeKumaMonitor{}
		Expect(k8sClient.Get(ctx, client.ObjectKey{Name: "web", Namespace: namespace}, monitor)).To(Succeed())
		return monitor
	}

	sync := func() *monitoringv1alpha1.UptimeKumaMonitor {
		GinkgoHelper()
		result, err := r.Reconcile(ctx, request("web"))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.RequeueAfter).NotTo(BeZero())
		return fetch()
	}

	Context("without a connected config", func() {
		It("reports the missing config", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{MonitorType: "http", URL: "https://example.com", Active: pointer.Bool(true)})

			monitor := sync()
			cond := meta.FindStatusCondition(monitor.Status.Conditions, ConditionTypeReady)
			Expect(cond.Status).To(Equal(metav1.ConditionFalse))
			Expect(cond.Reason).To(Equal(ReasonMonitorSyncFailed))
			Expect(cond.Message).To(ContainSubstring("UptimeKumaConfig 'uptime-kuma' not found"))
		})
	})

	Context("with a connected config", func() {
		var groupID int

		BeforeEach(func() {
			connectConfig()

			group := &monitoringv1alpha1.UptimeKumaGroup{ObjectMeta: metav1.ObjectMeta{Name: "platform", Namespace: namespace}}
			Expect(k8sClient.Create(ctx, group)).To(Succeed())
			gr := &UptimeKumaGroupReconciler{Client: k8sClient, Scheme: scheme}
			_, err := gr.Reconcile(ctx, request("platform"))
			Expect(err).NotTo(HaveOccurred())
			Expect(k8sClient.Get(ctx, client.ObjectKeyFromObject(group), group)).To(Succeed())
			groupID = group.Status.GroupID
			srv.ResetWrites()
		})

		It("creates the monitor with its group and tags", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{
				MonitorType: "http",
				URL:         "https://example.com/health",
				Active:      pointer.Bool(true),
				Group:       "platform",
				Tags:        []monitoringv1alpha1.MonitorTag{{Name: "team", Value: "sre", Color: "#2196F3"}},
				HTTP: &monitoringv1alpha1.HTTPOptions{
					Method:              "GET",
					Headers:             map[string]string{"X-Checked-By": "kuma"},
					AcceptedStatusCodes: []string{"200-299", "301"},
				},
			})

			monitor := sync()
			Expect(monitor.Finalizers).To(ContainElement(monitorFinalizerName))
			id := monitor.Status.MonitorID
			Expect(id).NotTo(BeZero())

			record := srv.Record("monitors", id)
			Expect(record).To(HaveKeyWithValue("name", "web"))
			Expect(record).To(HaveKeyWithValue("interval", float64(DefaultMonitorInterval)))
			Expect(record).To(HaveKeyWithValue("parent", float64(groupID)))
			Expect(record).To(HaveKeyWithValue("headers", `{"X-Checked-By":"kuma"}`))
			Expect(record).To(HaveKeyWithValue("accepted_statuscodes", []any{"200-299", "301"}))
			Expect(record["tags"]).To(ConsistOf(HaveKeyWithValue("value", "sre")))

			Expect(monitor.Status.ChangedFields).To(ContainElements("name", "url", "parent", "tags"))
			Expect(monitor.Status.Status).To(Equal("up"))
			Expect(monitor.Status.UptimeStats).To(Equal(&monitoringv1alpha1.UptimeStats{
				Uptime24h: "99.50",
				Uptime30d: "99.90",
				AvgPing:   "42",
			}))
			cond := meta.FindStatusCondition(monitor.Status.Conditions, ConditionTypeReady)
			Expect(cond.Status).To(Equal(metav1.ConditionTrue))
			Expect(cond.Message).To(ContainSubstring("updated name"))
		})

		It("converges without writes", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{
				MonitorType: "http",
				URL:         "https://example.com",
				Active:      pointer.Bool(true),
				Tags:        []monitoringv1alpha1.MonitorTag{{Name: "team", Value: "sre"}},
			})
			sync()

			srv.ResetWrites()
			monitor := sync()
			Expect(srv.Writes()).To(BeEmpty())
			Expect(monitor.Status.ChangedFields).To(BeEmpty())
			cond := meta.FindStatusCondition(monitor.Status.Conditions, ConditionTypeReady)
			Expect(cond.Message).To(HaveSuffix("up to date"))
		})

		It("writes back drifted fields only", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{MonitorType: "http", URL: "https://example.com", Active: pointer.Bool(true)})
			id := sync().Status.MonitorID

			kc := uptimeclient.NewClient(uptimeclient.Config{BaseURL: srv.URL})
			Expect(kc.UpdateMonitor(ctx, id, &uptimeclient.Monitor{URL: pointer.String("https://drifted.example.com")})).To(Succeed())

			srv.ResetWrites()
			monitor := sync()
			Expect(monitor.Status.ChangedFields).To(Equal([]string{"url"}))
			Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("PUT /api/v1/monitors/%d", id)}))
			Expect(srv.Record("monitors", id)).To(HaveKeyWithValue("url", "https://example.com"))
		})

		It("pauses and resumes from the active flag", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{MonitorType: "http", URL: "https://example.com", Active: pointer.Bool(true)})
			monitor := sync()
			id := monitor.Status.MonitorID

			monitor.Spec.Active = pointer.Bool(false)
			Expect(k8sClient.Update(ctx, monitor)).To(Succeed())
			srv.ResetWrites()
			monitor = sync()
			Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("POST /api/v1/monitors/%d/pause", id)}))
			Expect(monitor.Status.ChangedFields).To(Equal([]string{"active"}))
			Expect(monitor.Status.Status).To(Equal("paused"))

			monitor.Spec.Active = pointer.Bool(true)
			Expect(k8sClient.Update(ctx, monitor)).To(Succeed())
			srv.ResetWrites()
			monitor = sync()
			Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("POST /api/v1/monitors/%d/resume", id)}))
			Expect(monitor.Status.Status).To(Equal("up"))
		})

		It("creates a paused monitor that stays paused", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{MonitorType: "http", URL: "https://example.com", Active: pointer.Bool(false)})

			stored, err := json.Marshal(fetch().Spec)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(stored)).To(ContainSubstring(`"active":false`))

			monitor := sync()
			id := monitor.Status.MonitorID
			Expect(srv.Writes()).To(ContainElement(fmt.Sprintf("POST /api/v1/monitors/%d/pause", id)))
			Expect(srv.Record("monitors", id)).To(HaveKeyWithValue("active", false))

			srv.ResetWrites()
			sync()
			Expect(srv.Writes()).To(BeEmpty())
		})

		It("treats an unset active flag as running", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{MonitorType: "http", URL: "https://example.com"})

			id := sync().Status.MonitorID
			Expect(srv.Writes()).NotTo(ContainElement(HaveSuffix("/pause")))
			Expect(srv.Record("monitors", id)).To(HaveKeyWithValue("active", true))
		})

		It("writes back a TLS check turned on again", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{
				MonitorType: "http",
				URL:         "https://example.com",
				HTTP:        &monitoringv1alpha1.HTTPOptions{IgnoreTLS: pointer.Bool(true)},
			})
			monitor := sync()
			id := monitor.Status.MonitorID
			Expect(srv.Record("monitors", id)).To(HaveKeyWithValue("ignoreTls", true))

			monitor.Spec.HTTP.IgnoreTLS = pointer.Bool(false)
			Expect(k8sClient.Update(ctx, monitor)).To(Succeed())
			srv.ResetWrites()
			monitor = sync()
			Expect(monitor.Status.ChangedFields).To(Equal([]string{"ignoreTls"}))
			Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("PUT /api/v1/monitors/%d", id)}))
			Expect(srv.Record("monitors", id)).To(HaveKeyWithValue("ignoreTls", false))

			monitor.Spec.HTTP.IgnoreTLS = nil
			Expect(k8sClient.Update(ctx, monitor)).To(Succeed())
			srv.ResetWrites()
			sync()
			Expect(srv.Writes()).To(BeEmpty())
		})

		It("clears an emptied description", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{MonitorType: "http", URL: "https://example.com", Description: "storefront"})
			monitor := sync()
			id := monitor.Status.MonitorID

			monitor.Spec.Description = ""
			Expect(k8sClient.Update(ctx, monitor)).To(Succeed())
			monitor = sync()
			Expect(monitor.Status.ChangedFields).To(Equal([]string{"description"}))
			Expect(srv.Record("monitors", id)).To(HaveKeyWithValue("description", ""))
		})

		It("recreates a monitor removed from Uptime Kuma", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{MonitorType: "http", URL: "https://example.com", Active: pointer.Bool(true)})
			id := sync().Status.MonitorID

			kc := uptimeclient.NewClient(uptimeclient.Config{BaseURL: srv.URL})
			Expect(kc.DeleteMonitor(ctx, id, false)).To(Succeed())

			monitor := sync()
			Expect(monitor.Status.MonitorID).NotTo(Equal(id))
			Expect(srv.Record("monitors", monitor.Status.MonitorID)).To(HaveKeyWithValue("url", "https://example.com"))
		})

		It("waits for an unsynced group", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{MonitorType: "http", URL: "https://example.com", Active: pointer.Bool(true), Group: "missing"})

			monitor := sync()
			cond := meta.FindStatusCondition(monitor.Status.Conditions, ConditionTypeReady)
			Expect(cond.Status).To(Equal(metav1.ConditionFalse))
			Expect(cond.Message).To(ContainSubstring("group 'missing' not found"))
			Expect(srv.Writes()).To(BeEmpty())
		})

		It("deletes the monitor before releasing the finalizer", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{MonitorType: "http", URL: "https://example.com", Active: pointer.Bool(true)})
			monitor := sync()
			id := monitor.Status.MonitorID

			Expect(k8sClient.Delete(ctx, monitor)).To(Succeed())
			_, err := r.Reconcile(ctx, request("web"))
			Expect(err).NotTo(HaveOccurred())

			Expect(srv.Record("monitors", id)).To(BeNil())
			Expect(srv.Writes()).To(ContainElement(fmt.Sprintf("DELETE /api/v1/monitors/%d", id)))
		})

		It("leaves an orphaned monitor in Uptime Kuma", func() {
			create(monitoringv1alpha1.UptimeKumaMonitorSpec{
				MonitorType:    "http",
				URL:            "https://example.com",
				Active:         pointer.Bool(true),
				DeletionPolicy: monitoringv1alpha1.DeletionPolicyOrphan,
			})
			monitor := sync()
			id := monitor.Status.MonitorID
			srv.ResetWrites()

			Expect(k8sClient.Delete(ctx, monitor)).To(Succeed())
			_, err := r.Reconcile(ctx, request("web"))
			Expect(err).NotTo(HaveOccurred())

			Expect(srv.Record("monitors", id)).NotTo(BeNil())
			Expect(srv.Writes()).To(BeEmpty())
		})
	})
})
