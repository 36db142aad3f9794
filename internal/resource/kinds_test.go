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
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/benn447/uptime-kuma/declarative/internal/kumatest"
)

var _ = Describe("monitor", func() {
	It("resolves notifications and the proxy by name", func() {
		notificationID := srv.Seed("notifications", map[string]any{"name": "ops", "type": "slack"})
		proxyID := srv.Seed("proxies", map[string]any{"protocol": "http", "host": "proxy.local", "port": 3128})

		result := apply("monitor", "", map[string]any{
			"name":               "web",
			"type":               "http",
			"url":                "https://example.com",
			"notification_names": []any{"ops"},
			"proxy":              map[string]any{"host": "proxy.local", "port": 3128},
		})

		record := srv.Record("monitors", result.ID)
		Expect(record).To(HaveKeyWithValue("notificationIDList", []any{float64(notificationID)}))
		Expect(record).To(HaveKeyWithValue("proxyId", float64(proxyID)))
		Expect(record).NotTo(HaveKey("notification_names"))
	})

	It("refuses tags declared on the monitor", func() {
		_, err := reconciler.Reconcile(ctx, Request{Kind: "monitor", Spec: map[string]any{
			"name": "web",
			"tags": []any{map[string]any{"tag_id": 1}},
		}})

		Expect(err).To(MatchError(ContainSubstring("monitor_tag")))
		Expect(srv.Writes()).To(BeEmpty())
	})

	It("lists every monitor across pages", func() {
		for i := 0; i < 130; i++ {
			srv.Seed("monitors", map[string]any{"name": fmt.Sprintf("m%d", i)})
		}

		kind, err := reconciler.Registry().Get("monitor")
		Expect(err).NotTo(HaveOccurred())
		objects, err := kind.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(objects).To(HaveLen(130))
		Expect(objects[129].Name).To(Equal("m129"))
	})
})

var _ = Describe("monitor_tag", func() {
	var monitorID, tagID int
	link := map[string]any{"monitor_name": "web", "tag_name": "env", "value": "prod"}

	BeforeEach(func() {
		monitorID = srv.Seed("monitors", map[string]any{"name": "web"})
		tagID = srv.Seed("tags", map[string]any{"name": "env", "color": "#2563eb"})
	})

	It("adds the tag once", func() {
		result := apply("monitor_tag", "", link)
		Expect(result.Action).To(Equal(ActionCreate))
		Expect(result.Name).To(Equal("web/env:prod"))
		Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("POST /api/v1/monitors/%d/tags", monitorID)}))

		result = applyAgain("monitor_tag", "", link)
		Expect(result.Action).To(Equal(ActionNone))
		Expect(srv.Writes()).To(BeEmpty())
	})

	It("treats another value as another link", func() {
		apply("monitor_tag", "", link)
		result := applyAgain("monitor_tag", "", map[string]any{"monitor_name": "web", "tag_name": "env", "value": "dev"})

		Expect(result.Action).To(Equal(ActionCreate))
		Expect(srv.Record("monitors", monitorID)["tags"]).To(HaveLen(2))
	})

	It("removes only the declared value", func() {
		apply("monitor_tag", "", link)
		apply("monitor_tag", "", map[string]any{"monitor_name": "web", "tag_name": "env"})

		result := applyAgain("monitor_tag", StateAbsent, link)
		Expect(result.Action).To(Equal(ActionDelete))
		Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("DELETE /api/v1/monitors/%d/tags/%d", monitorID, tagID)}))

		tags := srv.Record("monitors", monitorID)["tags"]
		Expect(tags).To(ConsistOf(HaveKeyWithValue("value", "")))
	})

	It("fails on a missing tag unless it is a dry run", func() {
		spec := map[string]any{"monitor_name": "web", "tag_name": "team"}

		result, err := reconciler.Reconcile(ctx, Request{Kind: "monitor_tag", Spec: spec, DryRun: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Action).To(Equal(ActionCreate))

		_, err = reconciler.Reconcile(ctx, Request{Kind: "monitor_tag", Spec: spec})
		Expect(IsReferenceError(err)).To(BeTrue())
		Expect(srv.Writes()).To(BeEmpty())
	})
})

var _ = Describe("notification", func() {
	slack := func(url string) map[string]any {
		return map[string]any{"name": "ops", "type": "slack", "slackwebhookURL": url}
	}

	It("stores provider settings next to the common fields", func() {
		result := apply("notification", "", slack("https://hooks.example.com/a"))
		Expect(result.ChangeSet.Fields()).To(Equal([]string{"name", "type", "slackwebhookURL"}))
		Expect(srv.Record("notifications", result.ID)).To(HaveKeyWithValue("slackwebhookURL", "https://hooks.example.com/a"))

		result = applyAgain("notification", "", slack("https://hooks.example.com/a"))
		Expect(result.Action).To(Equal(ActionNone))

		result = applyAgain("notification", "", slack("https://hooks.example.com/b"))
		Expect(result.Action).To(Equal(ActionUpdate))
		Expect(result.ChangeSet.Fields()).To(Equal([]string{"slackwebhookURL"}))
	})

	It("rejects settings the provider does not accept", func() {
		spec := slack("https://hooks.example.com/a")
		spec["telegramBotToken"] = "x"

		_, err := reconciler.Reconcile(ctx, Request{Kind: "notification", Spec: spec})
		Expect(err).To(MatchError(ContainSubstring("telegramBotToken")))
		Expect(srv.Writes()).To(BeEmpty())
	})
})

var _ = Describe("proxy", func() {
	It("does not reapply applyExisting", func() {
		spec := map[string]any{"protocol": "http", "host": "proxy.local", "port": 3128, "applyExisting": true}
		result := apply("proxy", "", spec)
		Expect(result.Name).To(Equal("proxy.local:3128"))

		srv.Seed("proxies", map[string]any{"protocol": "http", "host": "other.local", "port": 8080})
		result = applyAgain("proxy", "", map[string]any{"protocol": "http", "host": "other.local", "port": 8080, "applyExisting": true})
		Expect(result.Action).To(Equal(ActionNone))
		Expect(srv.Writes()).To(BeEmpty())
	})
})

var _ = Describe("group, tag and docker_host", func() {
	DescribeTable("create then converge",
		func(kind, collection string, spec map[string]any) {
			result := apply(kind, "", spec)
			Expect(result.Action).To(Equal(ActionCreate))
			Expect(srv.Records(collection)).To(HaveLen(1))

			result = applyAgain(kind, "", spec)
			Expect(result.Action).To(Equal(ActionNone))
			Expect(srv.Writes()).To(BeEmpty())

			result = applyAgain(kind, StateAbsent, spec)
			Expect(result.Action).To(Equal(ActionDelete))
			Expect(srv.Records(collection)).To(BeEmpty())
		},
		Entry("group", "group", "groups", map[string]any{"name": "infra", "description": "core services"}),
		Entry("tag", "tag", "tags", map[string]any{"name": "env", "color": "#2563eb"}),
		Entry("docker_host", "docker_host", "docker-hosts", map[string]any{"name": "local", "dockerType": "socket", "dockerDaemon": "/var/run/docker.sock"}),
	)

	It("updates a tag color in place", func() {
		created := apply("tag", "", map[string]any{"name": "env", "color": "#2563eb"})

		result := applyAgain("tag", "", map[string]any{"name": "env", "color": "#dc2626"})
		Expect(result.Action).To(Equal(ActionUpdate))
		Expect(result.ID).To(Equal(created.ID))
		Expect(result.ChangeSet.Fields()).To(Equal([]string{"color"}))
		Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("PUT /api/v1/tags/%d", created.ID)}))
		Expect(srv.Record("tags", created.ID)).To(HaveKeyWithValue("color", "#dc2626"))
	})
})

var _ = Describe("maintenance", func() {
	var (
		monitorID int
		now       time.Time
	)
	window := func() map[string]any {
		return map[string]any{
			"title":        "upgrade",
			"strategy":     "manual",
			"monitors":     []any{map[string]any{"name": "web"}},
			"status_pages": []any{map[string]any{"name": "Main"}},
		}
	}

	BeforeEach(func() {
		monitorID = srv.Seed("monitors", map[string]any{"name": "web"})
		srv.SeedStatusPage(map[string]any{"slug": "main", "title": "Main"})

		now = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
		registry := NewRegistry()
		Expect(registry.Register(&maintenanceKind{
			client: kuma,
			now:    func() time.Time { return now },
		})).To(Succeed())
		reconciler = NewReconciler(registry)
	})

	It("creates the window with defaults and links", func() {
		result := apply("maintenance", "", window())

		Expect(result.Action).To(Equal(ActionCreate))
		Expect(result.ChangeSet.Fields()).To(Equal([]string{
			"title", "strategy", "timeRange", "weekdays", "daysOfMonth", "monitors", "status_pages",
		}))

		record := srv.Record("maintenances", result.ID)
		Expect(record).To(HaveKeyWithValue("dateRange", []any{"2026-01-02 00:00:00"}))
		Expect(record).To(HaveKeyWithValue("weekdays", []any{}))
		Expect(record["timeRange"]).To(HaveLen(2))

		Expect(srv.Links(result.ID, "monitors")).To(ConsistOf(HaveKeyWithValue("id", float64(monitorID))))
		Expect(srv.Links(result.ID, "statusPages")).To(ConsistOf(HaveKeyWithValue("name", "Main")))
	})

	It("starts the window at midnight in the local zone", func() {
		now = time.Date(2026, 1, 3, 1, 30, 0, 0, time.FixedZone("UTC+10", 10*60*60))

		result := apply("maintenance", "", window())
		Expect(srv.Record("maintenances", result.ID)).To(HaveKeyWithValue("dateRange", []any{"2026-01-03 00:00:00"}))
	})

	It("converges without writes", func() {
		apply("maintenance", "", window())

		result := applyAgain("maintenance", "", window())
		Expect(result.Action).To(Equal(ActionNone))
		Expect(srv.Writes()).To(BeEmpty())
	})

	It("leaves undeclared links alone and clears empty ones", func() {
		id := apply("maintenance", "", window()).ID

		result := applyAgain("maintenance", "", map[string]any{"title": "upgrade", "strategy": "manual"})
		Expect(result.Action).To(Equal(ActionNone))

		result = applyAgain("maintenance", "", map[string]any{"title": "upgrade", "strategy": "manual", "monitors": []any{}})
		Expect(result.Action).To(Equal(ActionUpdate))
		Expect(result.ChangeSet.Fields()).To(Equal([]string{"monitors"}))
		Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("PUT /api/v1/maintenances/%d/monitors", id)}))
		Expect(srv.Links(id, "monitors")).To(BeEmpty())
		Expect(srv.Links(id, "statusPages")).To(HaveLen(1))
	})

	It("fails on links to missing monitors", func() {
		spec := window()
		spec["monitors"] = []any{map[string]any{"name": "ghost"}}

		_, err := reconciler.Reconcile(ctx, Request{Kind: "maintenance", Spec: spec})
		Expect(IsReferenceError(err)).To(BeTrue())
		Expect(srv.Writes()).To(BeEmpty())
	})

	It("pauses the window", func() {
		id := apply("maintenance", "", window()).ID

		result := applyAgain("maintenance", StatePaused, map[string]any{"title": "upgrade"})
		Expect(result.Action).To(Equal(ActionPause))
		Expect(srv.Record("maintenances", id)).To(HaveKeyWithValue("active", false))
	})
})

var _ = Describe("status_page", func() {
	page := func() map[string]any {
		return map[string]any{"slug": "main", "title": "Main", "published": true}
	}

	It("creates and configures the page", func() {
		spec := page()
		spec["footer_text"] = "ops"
		result := apply("status_page", "", spec)

		Expect(result.Action).To(Equal(ActionCreate))
		Expect(result.Name).To(Equal("main"))
		Expect(srv.Writes()).To(Equal([]string{
			"POST /api/v1/status-pages",
			"PUT /api/v1/status-pages/main",
			"DELETE /api/v1/status-pages/main/incident",
		}))
		Expect(srv.StatusPage("main")).To(HaveKeyWithValue("footer_text", "ops"))
	})

	It("always syncs the incident but leaves the page alone", func() {
		apply("status_page", "", page())

		result := applyAgain("status_page", "", page())
		Expect(result.Action).To(Equal(ActionUpdate))
		Expect(result.ChangeSet.Fields()).To(Equal([]string{"incident"}))
		Expect(srv.Writes()).To(Equal([]string{"DELETE /api/v1/status-pages/main/incident"}))
	})

	It("pins the declared incident", func() {
		spec := page()
		spec["incident"] = map[string]any{"title": "Outage", "content": "Database down", "style": "danger"}
		apply("status_page", "", spec)

		Expect(srv.Incident("main")).To(HaveKeyWithValue("title", "Outage"))
	})

	It("does not count the placeholder stylesheet as a change", func() {
		srv.SeedStatusPage(map[string]any{"slug": "main", "title": "Main", "published": true})
		Expect(srv.StatusPage("main")).To(HaveKeyWithValue("custom_css", kumatest.DefaultCustomCSS))

		spec := page()
		spec["custom_css"] = "body { color: red; }"
		result := apply("status_page", "", spec)
		Expect(result.ChangeSet.Has("custom_css")).To(BeFalse())
		Expect(srv.Writes()).NotTo(ContainElement("PUT /api/v1/status-pages/main"))
	})
})

var _ = Describe("api_key", func() {
	It("returns the key on create only", func() {
		result := apply("api_key", "", map[string]any{"name": "ci"})
		Expect(result.Action).To(Equal(ActionCreate))
		Expect(result.Extra).To(HaveKeyWithValue("key", Not(BeEmpty())))

		result = applyAgain("api_key", "", map[string]any{"name": "ci"})
		Expect(result.Action).To(Equal(ActionNone))
		Expect(result.Extra).To(BeNil())
	})

	It("enables and disables", func() {
		id := apply("api_key", "", map[string]any{"name": "ci"}).ID

		result := applyAgain("api_key", StateDisabled, map[string]any{"name": "ci"})
		Expect(result.Action).To(Equal(ActionDisable))
		Expect(srv.Writes()).To(Equal([]string{fmt.Sprintf("POST /api/v1/api-keys/%d/disable", id)}))

		result = applyAgain("api_key", StateDisabled, map[string]any{"name": "ci"})
		Expect(result.Action).To(Equal(ActionNone))

		result = applyAgain("api_key", StateEnabled, map[string]any{"name": "ci"})
		Expect(result.Action).To(Equal(ActionEnable))
	})
})

var _ = Describe("settings", func() {
	It("updates only differing settings", func() {
		result := apply("settings", "", map[string]any{"checkUpdate": false, "keepDataPeriodDays": 90})
		Expect(result.Action).To(Equal(ActionUpdate))
		Expect(result.ChangeSet.Fields()).To(Equal([]string{"checkUpdate", "keepDataPeriodDays"}))
		Expect(srv.Settings()).To(HaveKeyWithValue("keepDataPeriodDays", float64(90)))

		result = applyAgain("settings", "", map[string]any{"checkUpdate": false, "keepDataPeriodDays": 90})
		Expect(result.Action).To(Equal(ActionNone))
		Expect(srv.Writes()).To(BeEmpty())
	})

	It("never diffs the password", func() {
		result := apply("settings", "", map[string]any{"entryPage": "dashboard", "password": "secret"})
		Expect(result.Action).To(Equal(ActionNone))
		Expect(srv.Writes()).To(BeEmpty())
	})

	It("cannot be deleted", func() {
		_, err := reconciler.Reconcile(ctx, Request{Kind: "settings", State: StateAbsent, Spec: map[string]any{}})
		Expect(err).To(MatchError(ErrUnsupportedState))
	})
})
