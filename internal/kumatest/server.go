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

// Package kumatest runs an in-memory Uptime Kuma REST API for tests.
package kumatest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
)

// DefaultCustomCSS is the stylesheet new status pages start with
const DefaultCustomCSS = "body {\n  \n}\n"

// collection describes how one resource family is wrapped on the wire
type collection struct {
	list     string // key of the list response
	single   string // key of the get response
	createID string // key of the new id in the create response
	defaults map[string]any
}

var collections = map[string]collection{
	"monitors":      {list: "monitors", single: "monitor", createID: "monitorId", defaults: map[string]any{"active": true}},
	"groups":        {list: "groups", single: "group", createID: "groupId"},
	"tags":          {list: "tags", single: "tag"},
	"notifications": {list: "notifications", single: "notification", createID: "id", defaults: map[string]any{"active": true, "isDefault": false}},
	"proxies":       {list: "proxies", single: "proxy", createID: "id", defaults: map[string]any{"applyExisting": false, "active": true}},
	"maintenances":  {list: "maintenances", single: "maintenance", createID: "id", defaults: map[string]any{"active": true, "status": "scheduled"}},
	"api-keys":      {list: "apiKeys", single: "apiKey", createID: "keyId", defaults: map[string]any{"active": true}},
	"docker-hosts":  {list: "dockerHosts", single: "dockerHost", createID: "id"},
}

// Server is a fake Uptime Kuma API. It stores records as decoded JSON and
// records every write so tests can assert that nothing was sent.
type Server struct {
	URL string

	srv *httptest.Server

	mu          sync.Mutex
	nextID      int
	records     map[string]map[int]map[string]any
	statusPages map[string]map[string]any
	incidents   map[string]map[string]any
	links       map[int]map[string][]any
	settings    map[string]any
	writes      []string
	failStatus  int
}

// NewServer starts a fake server. Call Close when done.
func NewServer() *Server {
	s := &Server{
		records:     map[string]map[int]map[string]any{},
		statusPages: map[string]map[string]any{},
		incidents:   map[string]map[string]any{},
		links:       map[int]map[string][]any{},
		settings: map[string]any{
			"checkUpdate":        true,
			"checkBeta":          false,
			"keepDataPeriodDays": float64(180),
			"entryPage":          "dashboard",
			"searchEngineIndex":  false,
		},
	}
	for name := range collections {
		s.records[name] = map[int]map[string]any{}
	}

	s.srv = httptest.NewServer(s.router())
	s.URL = s.srv.URL
	return s
}

// Close shuts the server down
func (s *Server) Close() {
	s.srv.Close()
}

// Writes returns the non-GET requests served so far as "METHOD path"
func (s *Server) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.writes...)
}

// ResetWrites forgets the recorded writes
func (s *Server) ResetWrites() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = nil
}

// FailWrites makes every following write answer with status. Zero restores
// normal behaviour.
func (s *Server) FailWrites(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

// Seed stores a record directly and returns its id
func (s *Server) Seed(name string, record map[string]any) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(name, record)
}

// SeedStatusPage stores a status page directly
func (s *Server) SeedStatusPage(record map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	page := copyRecord(record)
	page["id"] = float64(s.nextID)
	if _, ok := page["custom_css"]; !ok {
		page["custom_css"] = DefaultCustomCSS
	}
	s.statusPages[page["slug"].(string)] = page
}

// Record returns a copy of a stored record, or nil
func (s *Server) Record(name string, id int) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[name][id]; ok {
		return copyRecord(rec)
	}
	return nil
}

// Records returns copies of every record in a collection ordered by id
func (s *Server) Records(name string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(name)
}

// StatusPage returns a copy of a stored status page, or nil
func (s *Server) StatusPage(slug string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page, ok := s.statusPages[slug]; ok {
		return copyRecord(page)
	}
	return nil
}

// Incident returns the pinned incident of a status page, or nil
func (s *Server) Incident(slug string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incidents[slug]
}

// Links returns the monitors or statusPages linked to a maintenance
func (s *Server) Links(maintenanceID int, kind string) []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.links[maintenanceID][kind]
}

// Settings returns a copy of the server settings
func (s *Server) Settings() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRecord(s.settings)
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.middleware)

	api.HandleFunc("/status/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.getSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.putSettings).Methods(http.MethodPut)

	api.HandleFunc("/status-pages", s.listStatusPages).Methods(http.MethodGet)
	api.HandleFunc("/status-pages", s.createStatusPage).Methods(http.MethodPost)
	api.HandleFunc("/status-pages/{slug}", s.getStatusPage).Methods(http.MethodGet)
	api.HandleFunc("/status-pages/{slug}", s.saveStatusPage).Methods(http.MethodPut)
	api.HandleFunc("/status-pages/{slug}", s.deleteStatusPage).Methods(http.MethodDelete)
	api.HandleFunc("/status-pages/{slug}/incident", s.postIncident).Methods(http.MethodPost)
	api.HandleFunc("/status-pages/{slug}/incident", s.unpinIncident).Methods(http.MethodDelete)

	api.HandleFunc("/monitors/{id:[0-9]+}/status", s.monitorStatus).Methods(http.MethodGet)
	api.HandleFunc("/monitors/{id:[0-9]+}/tags", s.addMonitorTag).Methods(http.MethodPost)
	api.HandleFunc("/monitors/{id:[0-9]+}/tags/{tagId:[0-9]+}", s.deleteMonitorTag).Methods(http.MethodDelete)
	api.HandleFunc("/maintenances/{id:[0-9]+}/{link:monitors|status-pages}", s.getLinks).Methods(http.MethodGet)
	api.HandleFunc("/maintenances/{id:[0-9]+}/{link:monitors|status-pages}", s.setLinks).Methods(http.MethodPut)
	api.HandleFunc("/{collection:monitors|maintenances}/{id:[0-9]+}/{action:pause|resume}", s.toggle).Methods(http.MethodPost)
	api.HandleFunc("/{collection:api-keys}/{id:[0-9]+}/{action:enable|disable}", s.toggle).Methods(http.MethodPost)

	api.HandleFunc("/{collection}", s.list).Methods(http.MethodGet)
	api.HandleFunc("/{collection}", s.create).Methods(http.MethodPost)
	api.HandleFunc("/{collection}/{id:[0-9]+}", s.get).Methods(http.MethodGet)
	api.HandleFunc("/{collection}/{id:[0-9]+}", s.update).Methods(http.MethodPut)
	api.HandleFunc("/{collection}/{id:[0-9]+}", s.delete).Methods(http.MethodDelete)
	return r
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			s.mu.Lock()
			s.writes = append(s.writes, r.Method+" "+r.URL.Path)
			status := s.failStatus
			s.mu.Unlock()
			if status != 0 {
				writeError(w, status, "injected failure")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "status": "healthy", "version": "test", "database": "ok"})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	name, spec, ok := lookupCollection(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	items := s.sorted(name)
	s.mu.Unlock()

	if name == "monitors" && r.URL.Query().Has("group") {
		group := float64(intQuery(r, "group", 0))
		kept := items[:0]
		for _, item := range items {
			if item["parent"] == group {
				kept = append(kept, item)
			}
		}
		items = kept
	}

	resp := map[string]any{"ok": true}
	if name == "monitors" || name == "groups" {
		page, limit := intQuery(r, "page", 1), intQuery(r, "limit", 50)
		total := len(items)
		start := (page - 1) * limit
		if start > total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}
		items = items[start:end]
		resp["total"], resp["page"], resp["limit"] = total, page, limit
	}
	if name == "api-keys" {
		for _, item := range items {
			delete(item, "key")
		}
	}
	resp[spec.list] = items
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	name, spec, ok := lookupCollection(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	rec, found := s.records[name][pathID(r, "id")]
	if found {
		rec = copyRecord(rec)
	}
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s not found", spec.single))
		return
	}
	delete(rec, "key")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, spec.single: rec})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	name, spec, ok := lookupCollection(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	id := s.insert(name, body)
	rec := copyRecord(s.records[name][id])
	s.mu.Unlock()

	resp := map[string]any{"ok": true, "msg": "Added Successfully."}
	switch name {
	case "tags":
		resp["tag"] = rec
	case "api-keys":
		resp[spec.createID] = id
		resp["key"] = rec["key"]
	default:
		resp[spec.createID] = id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	name, spec, ok := lookupCollection(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	id := pathID(r, "id")
	s.mu.Lock()
	rec, found := s.records[name][id]
	if found {
		for k, v := range body {
			if k != "id" {
				rec[k] = v
			}
		}
		rec = copyRecord(rec)
	}
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s not found", spec.single))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "msg": "Saved.", spec.single: rec})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	name, spec, ok := lookupCollection(w, r)
	if !ok {
		return
	}

	id := pathID(r, "id")
	s.mu.Lock()
	_, found := s.records[name][id]
	delete(s.records[name], id)
	delete(s.links, id)
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s not found", spec.single))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "msg": "Deleted Successfully."})
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["collection"]
	active := vars["action"] == "resume" || vars["action"] == "enable"

	s.mu.Lock()
	rec, found := s.records[name][pathID(r, "id")]
	if found {
		rec["active"] = active
	}
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) monitorStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rec, found := s.records["monitors"][pathID(r, "id")]
	status := "up"
	if found && rec["active"] == false {
		status = "paused"
	}
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "monitor not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "status": map[string]any{
		"status":     status,
		"uptime24h":  99.5,
		"uptime30d":  99.9,
		"avgPing24h": 42.0,
	}})
}

func (s *Server) addMonitorTag(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	tagID, _ := body["tagId"].(float64)

	s.mu.Lock()
	defer s.mu.Unlock()
	monitor, found := s.records["monitors"][pathID(r, "id")]
	tag, tagFound := s.records["tags"][int(tagID)]
	if !found || !tagFound {
		writeError(w, http.StatusNotFound, "monitor or tag not found")
		return
	}

	tags, _ := monitor["tags"].([]any)
	monitor["tags"] = append(tags, map[string]any{
		"tag_id": tagID,
		"value":  body["value"],
		"name":   tag["name"],
		"color":  tag["color"],
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) deleteMonitorTag(w http.ResponseWriter, r *http.Request) {
	tagID := float64(pathID(r, "tagId"))
	query := r.URL.Query()
	value, byValue := query.Get("value"), query.Has("value")

	s.mu.Lock()
	defer s.mu.Unlock()
	monitor, found := s.records["monitors"][pathID(r, "id")]
	if !found {
		writeError(w, http.StatusNotFound, "monitor not found")
		return
	}

	tags, _ := monitor["tags"].([]any)
	kept := []any{}
	for _, t := range tags {
		mt := t.(map[string]any)
		if mt["tag_id"] == tagID && (!byValue || mt["value"] == value) {
			continue
		}
		kept = append(kept, mt)
	}
	monitor["tags"] = kept
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) getLinks(w http.ResponseWriter, r *http.Request) {
	id, key := pathID(r, "id"), linkKey(r)

	s.mu.Lock()
	_, found := s.records["maintenances"][id]
	links := append([]any{}, s.links[id][key]...)
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "maintenance not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, key: links})
}

func (s *Server) setLinks(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	id, key := pathID(r, "id"), linkKey(r)
	links, _ := body[key].([]any)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.records["maintenances"][id]; !found {
		writeError(w, http.StatusNotFound, "maintenance not found")
		return
	}
	if s.links[id] == nil {
		s.links[id] = map[string][]any{}
	}
	s.links[id][key] = links
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) listStatusPages(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	slugs := make([]string, 0, len(s.statusPages))
	for slug := range s.statusPages {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	pages := make([]any, 0, len(slugs))
	for _, slug := range slugs {
		pages = append(pages, copyRecord(s.statusPages[slug]))
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "statusPages": pages})
}

func (s *Server) createStatusPage(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	slug, _ := body["slug"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.statusPages[slug]; exists || slug == "" {
		writeError(w, http.StatusBadRequest, "slug is already taken")
		return
	}
	s.nextID++
	s.statusPages[slug] = map[string]any{
		"id":         float64(s.nextID),
		"slug":       slug,
		"title":      body["title"],
		"custom_css": DefaultCustomCSS,
		"published":  true,
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) getStatusPage(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	s.mu.Lock()
	page, found := s.statusPages[slug]
	if found {
		page = copyRecord(page)
	}
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "status page not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "statusPage": page})
}

func (s *Server) saveStatusPage(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	slug := mux.Vars(r)["slug"]

	s.mu.Lock()
	defer s.mu.Unlock()
	page, found := s.statusPages[slug]
	if !found {
		writeError(w, http.StatusNotFound, "status page not found")
		return
	}
	for k, v := range body {
		if k != "id" && k != "slug" {
			page[k] = v
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) deleteStatusPage(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	s.mu.Lock()
	_, found := s.statusPages[slug]
	delete(s.statusPages, slug)
	delete(s.incidents, slug)
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "status page not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) postIncident(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	slug := mux.Vars(r)["slug"]

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.statusPages[slug]; !found {
		writeError(w, http.StatusNotFound, "status page not found")
		return
	}
	s.incidents[slug] = body
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) unpinIncident(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.statusPages[slug]; !found {
		writeError(w, http.StatusNotFound, "status page not found")
		return
	}
	delete(s.incidents, slug)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) getSettings(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	settings := copyRecord(s.settings)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "settings": settings})
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	for k, v := range body {
		if k != "password" {
			s.settings[k] = v
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "msg": "Saved"})
}

// insert stores record under a fresh id. Callers hold s.mu.
func (s *Server) insert(name string, record map[string]any) int {
	s.nextID++
	id := s.nextID

	rec := map[string]any{}
	for k, v := range collections[name].defaults {
		rec[k] = v
	}
	for k, v := range record {
		rec[k] = v
	}
	rec["id"] = float64(id)
	if name == "api-keys" {
		rec["key"] = fmt.Sprintf("uk%d_%s", id, strconv.FormatInt(int64(id*7919), 36))
	}
	s.records[name][id] = copyRecord(rec)
	return id
}

// sorted returns copies of a collection ordered by id. Callers hold s.mu.
func (s *Server) sorted(name string) []map[string]any {
	ids := make([]int, 0, len(s.records[name]))
	for id := range s.records[name] {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	items := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		items = append(items, copyRecord(s.records[name][id]))
	}
	return items
}

func lookupCollection(w http.ResponseWriter, r *http.Request) (string, collection, bool) {
	name := mux.Vars(r)["collection"]
	spec, ok := collections[name]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown resource "+name)
	}
	return name, spec, ok
}

func linkKey(r *http.Request) string {
	if mux.Vars(r)["link"] == "status-pages" {
		return "statusPages"
	}
	return "monitors"
}

func pathID(r *http.Request, key string) int {
	id, _ := strconv.Atoi(mux.Vars(r)[key])
	return id
}

func intQuery(r *http.Request, key string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func readBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	body := map[string]any{}
	if r.ContentLength == 0 {
		return body, true
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return body, true
}

// copyRecord deep copies a decoded JSON object
func copyRecord(rec map[string]any) map[string]any {
	raw, _ := json.Marshal(rec)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"ok": false, "msg": msg})
}
