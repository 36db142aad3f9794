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

package resource

import (
	"errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/benn447/uptime-kuma/declarative/pkg/reconcile"
)

var _ = Describe("Reconciler", func() {
	web := func() map[string]any {
		return map[string]any{"name": "web", "type": "http", "url": "https://example.com", "interval": 60}
	}

	Context("when the record does not exist", func() {
		It("creates it and reports every declared field", func() {
			result := apply("monitor", "", web())

			Expect(result.Action).To(Equal(ActionCreate))
			Expect(result.Changed).To(BeTrue())
			Expect(result.Name).To(Equal("web"))
			Expect(result.ID).NotTo(BeZero())
			Expect(result.ChangeSet.Fields()).To(Equal([]string{"name", "type", "url", "interval", "accepted_statuscodes"}))
			Expect(srv.Writes()).To(Equal([]string{"POST /api/v1/monitors"}))

			record := srv.Record("monitors", result.ID)
			Expect(record).To(HaveKeyWithValue("url", "https://example.com"))
			Expect(record).To(HaveKeyWithValue("accepted_statuscodes", []any{"200-299"}))
		})

		It("writes nothing on a dry run", func() {
			result, err := reconciler.Reconcile(ctx, Request{Kind: "monitor", Spec: web(), DryRun: true})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Action).To(Equal(ActionCreate))
			Expect(result.Changed).To(BeTrue())
			Expect(result.ID).To(BeZero())
			Expect(srv.Writes()).To(BeEmpty())
			Expect(srv.Records("monitors")).To(BeEmpty())
		})
	})

	Context("when the record exists", func() {
		var id int

		BeforeEach(func() {
			id = apply("monitor", "", web()).ID
		})

		It("does not write when nothing differs", func() {
			result := applyAgain("monitor", "", web())

			Expect(result.Action).To(Equal(ActionNone))
			Expect(result.Changed).To(BeFalse())
			Expect(result.ChangeSet).To(BeEmpty())
			Expect(result.ID).To(Equal(id))
			Expect(srv.Writes()).To(BeEmpty())
		})

		It("updates only when a declared field differs", func() {
			spec := web()
			spec["interval"] = 120
			result := applyAgain("monitor", "", spec)

			Expect(result.Action).To(Equal(ActionUpdate))
			Expect(result.ChangeSet.Fields()).To(Equal([]string{"interval"}))
			Expect(result.ChangeSet[0].Observed).To(BeNumerically("==", 60))
			Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("PUT /api/v1/monitors/%d", id)}))
			Expect(srv.Record("monitors", id)).To(HaveKeyWithValue("interval", float64(120)))
		})

		It("ignores fields the declaration leaves out", func() {
			result := applyAgain("monitor", "", map[string]any{"name": "web"})

			Expect(result.Action).To(Equal(ActionNone))
			Expect(srv.Writes()).To(BeEmpty())
		})

		It("reports the update without writing on a dry run", func() {
			spec := web()
			spec["url"] = "https://example.org"
			srv.ResetWrites()
			result, err := reconciler.Reconcile(ctx, Request{Kind: "monitor", Spec: spec, DryRun: true})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Action).To(Equal(ActionUpdate))
			Expect(result.ChangeSet.Has("url")).To(BeTrue())
			Expect(srv.Writes()).To(BeEmpty())
			Expect(srv.Record("monitors", id)).To(HaveKeyWithValue("url", "https://example.com"))
		})

		It("suppresses fields whose observed value is declared as ignorable", func() {
			spec := web()
			spec["interval"] = 300
			srv.ResetWrites()
			result, err := reconciler.Reconcile(ctx, Request{
				Kind:   "monitor",
				Spec:   spec,
				Ignore: map[string]any{"interval": []any{30, 60}},
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Action).To(Equal(ActionNone))
			Expect(srv.Writes()).To(BeEmpty())
		})

		It("rejects a malformed ignore policy", func() {
			_, err := reconciler.Reconcile(ctx, Request{
				Kind:   "monitor",
				Spec:   web(),
				Ignore: map[string]any{"interval": map[string]any{"value": 60}},
			})

			Expect(errors.Is(err, reconcile.ErrMalformedIgnorePolicy)).To(BeTrue())
			var rerr *ReconcileError
			Expect(errors.As(err, &rerr)).To(BeTrue())
			Expect(rerr.Op).To(Equal("diff"))
		})

		It("deletes it when declared absent", func() {
			result := applyAgain("monitor", StateAbsent, map[string]any{"name": "web"})

			Expect(result.Action).To(Equal(ActionDelete))
			Expect(result.Changed).To(BeTrue())
			Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("DELETE /api/v1/monitors/%d", id)}))
			Expect(srv.Record("monitors", id)).To(BeNil())
		})

		It("pauses and resumes only when the active flag differs", func() {
			result := applyAgain("monitor", StatePaused, map[string]any{"name": "web"})
			Expect(result.Action).To(Equal(ActionPause))
			Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("POST /api/v1/monitors/%d/pause", id)}))
			Expect(srv.Record("monitors", id)).To(HaveKeyWithValue("active", false))

			result = applyAgain("monitor", StatePaused, map[string]any{"name": "web"})
			Expect(result.Action).To(Equal(ActionNone))
			Expect(result.Changed).To(BeFalse())
			Expect(srv.Writes()).To(BeEmpty())

			result = applyAgain("monitor", StateResumed, map[string]any{"name": "web"})
			Expect(result.Action).To(Equal(ActionResume))
			Expect(srv.Record("monitors", id)).To(HaveKeyWithValue("active", true))
		})

		It("reports server failures with the failing step", func() {
			spec := web()
			spec["interval"] = 90
			srv.FailWrites(http.StatusInternalServerError)

			_, err := reconciler.Reconcile(ctx, Request{Kind: "monitor", Spec: spec})
			var rerr *ReconcileError
			Expect(errors.As(err, &rerr)).To(BeTrue())
			Expect(rerr.Op).To(Equal("update"))
			Expect(rerr.Name).To(Equal("web"))
			Expect(err.Error()).To(HavePrefix(`failed to update monitor "web"`))
		})
	})

	It("does nothing for an absent record that does not exist", func() {
		result := apply("monitor", StateAbsent, map[string]any{"name": "ghost"})

		Expect(result.Action).To(Equal(ActionNone))
		Expect(result.Changed).To(BeFalse())
		Expect(srv.Writes()).To(BeEmpty())
	})

	DescribeTable("rejecting requests",
		func(req Request, target error) {
			_, err := reconciler.Reconcile(ctx, req)
			Expect(err).To(MatchError(target))
			Expect(srv.Writes()).To(BeEmpty())
		},
		Entry("unknown kind", Request{Kind: "widget", Spec: map[string]any{}}, ErrUnknownKind),
		Entry("unsupported state", Request{Kind: "proxy", State: StatePaused, Spec: map[string]any{}}, ErrUnsupportedState),
		Entry("no identifying field", Request{Kind: "monitor", Spec: map[string]any{"type": "http"}}, ErrMissingKey),
		Entry("missing reference", Request{Kind: "monitor", Spec: map[string]any{"name": "web", "notification_names": []any{"ops"}}}, ErrReference),
	)

	It("fails to decode unknown spec fields", func() {
		_, err := reconciler.Reconcile(ctx, Request{Kind: "monitor", Spec: map[string]any{"name": "web", "bogus": true}})

		var rerr *ReconcileError
		Expect(errors.As(err, &rerr)).To(BeTrue())
		Expect(rerr.Op).To(Equal("decode"))
		Expect(err.Error()).To(ContainSubstring("bogus"))
	})

	It("counts reconciles by kind and action", func() {
		created := testutil.ToFloat64(reconcileTotal.WithLabelValues("tag", string(ActionCreate)))
		failed := testutil.ToFloat64(reconcileErrors.WithLabelValues("tag"))

		apply("tag", "", map[string]any{"name": "env", "color": "#2563eb"})
		_, err := reconciler.Reconcile(ctx, Request{Kind: "tag", Spec: map[string]any{}})
		Expect(err).To(HaveOccurred())

		Expect(testutil.ToFloat64(reconcileTotal.WithLabelValues("tag", string(ActionCreate)))).To(Equal(created + 1))
		Expect(testutil.ToFloat64(reconcileErrors.WithLabelValues("tag"))).To(Equal(failed + 1))
	})
})

var _ = Describe("Registry", func() {
	It("registers every built-in kind", func() {
		Expect(reconciler.Registry().Kinds()).To(Equal([]string{
			"api_key", "docker_host", "group", "maintenance", "monitor", "monitor_tag",
			"notification", "proxy", "settings", "status_page", "tag",
		}))
	})

	It("refuses to register a kind twice", func() {
		r := NewRegistry()
		Expect(r.Register(&tagKind{client: kuma})).To(Succeed())
		Expect(r.Register(&tagKind{client: kuma})).To(MatchError(ErrDuplicateKind))
	})

	It("fails for unknown kinds", func() {
		_, err := NewRegistry().Get("monitor")
		Expect(err).To(MatchError(ErrUnknownKind))
	})
})
