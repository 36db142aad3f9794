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

var _ = Describe("UptimeKumaGroup controller", func() {
	var r *UptimeKumaGroupReconciler

	BeforeEach(func() {
		connectConfig()
		r = &UptimeKumaGroupReconciler{Client: k8sClient, Scheme: scheme}
	})

	create := func(name string, spec monitoringv1alpha1.UptimeKumaGroupSpec) {
		GinkgoHelper()
		group := &monitoringv1alpha1.UptimeKumaGroup{
			ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
			Spec:       spec,
		}
		Expect(k8sClient.Create(ctx, group)).To(Succeed())
	}

	fetch := func(name string) *monitoringv1alpha1.UptimeKumaGroup {
		GinkgoHelper()
		group := &monitoringv1alpha1.UptimeKumaGroup{}
		Expect(k8sClient.Get(ctx, client.ObjectKey{Name: name, Namespace: namespace}, group)).To(Succeed())
		return group
	}

	sync := func(name string) *monitoringv1alpha1.UptimeKumaGroup {
		GinkgoHelper()
		_, err := r.Reconcile(ctx, request(name))
		Expect(err).NotTo(HaveOccurred())
		return fetch(name)
	}

	It("creates the group and converges", func() {
		create("platform", monitoringv1alpha1.UptimeKumaGroupSpec{Description: "core services", Weight: 10})

		group := sync("platform")
		Expect(group.Finalizers).To(ContainElement(groupFinalizerName))
		Expect(group.Status.GroupID).NotTo(BeZero())
		Expect(group.Status.ChangedFields).To(Equal([]string{"name", "description", "weight"}))
		Expect(srv.Record("groups", group.Status.GroupID)).To(And(
			HaveKeyWithValue("name", "platform"),
			HaveKeyWithValue("weight", float64(10)),
		))

		srv.ResetWrites()
		group = sync("platform")
		Expect(srv.Writes()).To(BeEmpty())
		Expect(group.Status.ChangedFields).To(BeEmpty())
		cond := meta.FindStatusCondition(group.Status.Conditions, ConditionTypeReady)
		Expect(cond.Status).To(Equal(metav1.ConditionTrue))
		Expect(cond.Message).To(HaveSuffix("up to date"))
	})

	It("writes back drifted fields only", func() {
		create("platform", monitoringv1alpha1.UptimeKumaGroupSpec{GroupName: "Platform", Description: "core services"})
		id := sync("platform").Status.GroupID

		kc := uptimeclient.NewClient(uptimeclient.Config{BaseURL: srv.URL})
		Expect(kc.UpdateGroup(ctx, id, &uptimeclient.Group{Description: pointer.String("edited by hand")})).To(Succeed())

		srv.ResetWrites()
		group := sync("platform")
		Expect(group.Status.ChangedFields).To(Equal([]string{"description"}))
		Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("PUT /api/v1/groups/%d", id)}))
		Expect(srv.Record("groups", id)).To(HaveKeyWithValue("description", "core services"))
	})

	It("counts the monitors in the group", func() {
		create("platform", monitoringv1alpha1.UptimeKumaGroupSpec{})
		id := sync("platform").Status.GroupID
		srv.Seed("monitors", map[string]any{"name": "api", "parent": float64(id)})
		srv.Seed("monitors", map[string]any{"name": "other"})

		Expect(sync("platform").Status.MonitorCount).To(Equal(1))
	})

	It("nests under a synced parent", func() {
		create("platform", monitoringv1alpha1.UptimeKumaGroupSpec{})
		create("databases", monitoringv1alpha1.UptimeKumaGroupSpec{ParentGroup: "platform"})

		group := sync("databases")
		cond := meta.FindStatusCondition(group.Status.Conditions, ConditionTypeReady)
		Expect(cond.Status).To(Equal(metav1.ConditionFalse))
		Expect(cond.Message).To(ContainSubstring("has not been synced yet"))
		Expect(group.Status.GroupID).To(BeZero())

		parentID := sync("platform").Status.GroupID
		group = sync("databases")
		Expect(srv.Record("groups", group.Status.GroupID)).To(HaveKeyWithValue("parent", float64(parentID)))
	})

	It("refuses circular parents", func() {
		create("a", monitoringv1alpha1.UptimeKumaGroupSpec{ParentGroup: "b"})
		create("b", monitoringv1alpha1.UptimeKumaGroupSpec{ParentGroup: "a"})

		cond := meta.FindStatusCondition(sync("a").Status.Conditions, ConditionTypeReady)
		Expect(cond.Message).To(ContainSubstring("circular parent reference"))
		Expect(srv.Writes()).To(BeEmpty())
	})

	It("refuses longer parent cycles", func() {
		create("a", monitoringv1alpha1.UptimeKumaGroupSpec{ParentGroup: "b"})
		create("b", monitoringv1alpha1.UptimeKumaGroupSpec{ParentGroup: "c"})
		create("c", monitoringv1alpha1.UptimeKumaGroupSpec{ParentGroup: "a"})

		cond := meta.FindStatusCondition(sync("a").Status.Conditions, ConditionTypeReady)
		Expect(cond.Message).To(ContainSubstring("a -> b -> c -> a"))
	})

	It("deletes the group before releasing the finalizer", func() {
		create("platform", monitoringv1alpha1.UptimeKumaGroupSpec{})
		group := sync("platform")
		id := group.Status.GroupID

		Expect(k8sClient.Delete(ctx, group)).To(Succeed())
		_, err := r.Reconcile(ctx, request("platform"))
		Expect(err).NotTo(HaveOccurred())

		Expect(srv.Record("groups", id)).To(BeNil())
		Expect(srv.Writes()).To(ContainElement(fmt.Sprintf("DELETE /api/v1/groups/%d", id)))
	})

	It("orphans the group when asked to", func() {
		create("platform", monitoringv1alpha1.UptimeKumaGroupSpec{DeletionPolicy: monitoringv1alpha1.DeletionPolicyOrphan})
		group := sync("platform")
		id := group.Status.GroupID
		srv.ResetWrites()

		Expect(k8sClient.Delete(ctx, group)).To(Succeed())
		_, err := r.Reconcile(ctx, request("platform"))
		Expect(err).NotTo(HaveOccurred())

		Expect(srv.Record("groups", id)).NotTo(BeNil())
		Expect(srv.Writes()).To(BeEmpty())
	})
})
