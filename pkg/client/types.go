package client

import (
	"encoding/json"
	"sort"
)

// Records use pointer fields for everything the server may omit. The same
// struct describes a declared resource (nil means "not declared") and the
// record returned by the server (nil means "absent").

// Monitor represents a monitor in Uptime Kuma
type Monitor struct {
	ID                       int          `json:"id,omitempty"`
	Name                     *string      `json:"name,omitempty"`
	Type                     *string      `json:"type,omitempty"`
	URL                      *string      `json:"url,omitempty"`
	Hostname                 *string      `json:"hostname,omitempty"`
	Port                     *int         `json:"port,omitempty"`
	Interval                 *int         `json:"interval,omitempty"`
	RetryInterval            *int         `json:"retryInterval,omitempty"`
	MaxRetries               *int         `json:"maxretries,omitempty"`
	UpsideDown               *bool        `json:"upsideDown,omitempty"`
	Description              *string      `json:"description,omitempty"`
	Active                   *bool        `json:"active,omitempty"`
	Parent                   *int         `json:"parent,omitempty"`
	NotificationIDList       []int        `json:"notificationIDList,omitempty"`
	ExpiryNotification       *bool        `json:"expiryNotification,omitempty"`
	IgnoreTLS                *bool        `json:"ignoreTls,omitempty"`
	MaxRedirects             *int         `json:"maxredirects,omitempty"`
	AcceptedStatusCodes      []string     `json:"accepted_statuscodes,omitempty"`
	ProxyID                  *int         `json:"proxyId,omitempty"`
	Method                   *string      `json:"method,omitempty"`
	Body                     *string      `json:"body,omitempty"`
	Headers                  *string      `json:"headers,omitempty"`
	AuthMethod               *string      `json:"authMethod,omitempty"`
	BasicAuthUser            *string      `json:"basic_auth_user,omitempty"`
	BasicAuthPass            *string      `json:"basic_auth_pass,omitempty"`
	AuthDomain               *string      `json:"authDomain,omitempty"`
	AuthWorkstation          *string      `json:"authWorkstation,omitempty"`
	Keyword                  *string      `json:"keyword,omitempty"`
	DNSResolveServer         *string      `json:"dns_resolve_server,omitempty"`
	DNSResolveType           *string      `json:"dns_resolve_type,omitempty"`
	MQTTUsername             *string      `json:"mqttUsername,omitempty"`
	MQTTPassword             *string      `json:"mqttPassword,omitempty"`
	MQTTTopic                *string      `json:"mqttTopic,omitempty"`
	MQTTSuccessMessage       *string      `json:"mqttSuccessMessage,omitempty"`
	DatabaseConnectionString *string      `json:"databaseConnectionString,omitempty"`
	DatabaseQuery            *string      `json:"databaseQuery,omitempty"`
	DockerContainer          *string      `json:"docker_container,omitempty"`
	DockerHost               *int         `json:"docker_host,omitempty"`
	Tags                     []MonitorTag `json:"tags,omitempty"`
}

// MonitorTag represents a tag on a monitor
type MonitorTag struct {
	TagID int    `json:"tag_id"`
	Value string `json:"value"`
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// Group represents a monitor group in Uptime Kuma
type Group struct {
	ID          int     `json:"id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Weight      *int    `json:"weight,omitempty"`
	Parent      *int    `json:"parent,omitempty"`
}

// Tag represents a tag in Uptime Kuma
type Tag struct {
	ID    int     `json:"id,omitempty"`
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Notification is a notification provider configuration. Provider specific
// settings (webhook URLs, tokens, ...) are kept in Provider and sent flattened
// next to the common fields.
type Notification struct {
	ID            int            `json:"id,omitempty"`
	Name          *string        `json:"name,omitempty"`
	Type          *string        `json:"type,omitempty"`
	IsDefault     *bool          `json:"isDefault,omitempty"`
	ApplyExisting *bool          `json:"applyExisting,omitempty"`
	Active        *bool          `json:"active,omitempty"`
	Provider      map[string]any `json:"-"`
}

var notificationFields = map[string]struct{}{
	"id": {}, "name": {}, "type": {}, "isDefault": {}, "applyExisting": {}, "active": {},
}

// MarshalJSON flattens Provider into the notification object.
func (n Notification) MarshalJSON() ([]byte, error) {
	type plain Notification
	common, err := json.Marshal(plain(n))
	if err != nil {
		return nil, err
	}
	if len(n.Provider) == 0 {
		return common, nil
	}

	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(common, &merged); err != nil {
		return nil, err
	}
	for k, v := range n.Provider {
		if _, reserved := notificationFields[k]; reserved {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// UnmarshalJSON collects every non-common field into Provider.
func (n *Notification) UnmarshalJSON(data []byte) error {
	type plain Notification
	var common plain
	if err := json.Unmarshal(data, &common); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k, v := range all {
		if _, reserved := notificationFields[k]; reserved {
			continue
		}
		if common.Provider == nil {
			common.Provider = map[string]any{}
		}
		common.Provider[k] = v
	}

	*n = Notification(common)
	return nil
}

// ProviderKeys returns the provider specific field names, sorted.
func (n *Notification) ProviderKeys() []string {
	keys := make([]string, 0, len(n.Provider))
	for k := range n.Provider {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Proxy represents an HTTP or SOCKS proxy monitors can use
type Proxy struct {
	ID            int     `json:"id,omitempty"`
	Protocol      *string `json:"protocol,omitempty"`
	Host          *string `json:"host,omitempty"`
	Port          *int    `json:"port,omitempty"`
	Auth          *bool   `json:"auth,omitempty"`
	Username      *string `json:"username,omitempty"`
	Password      *string `json:"password,omitempty"`
	Active        *bool   `json:"active,omitempty"`
	Default       *bool   `json:"default,omitempty"`
	ApplyExisting *bool   `json:"applyExisting,omitempty"`
}

// TimeOfDay is one end of a maintenance time range
type TimeOfDay struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Maintenance represents a maintenance window
type Maintenance struct {
	ID          int         `json:"id,omitempty"`
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Strategy    *string     `json:"strategy,omitempty"`
	Active      *bool       `json:"active,omitempty"`
	IntervalDay *int        `json:"intervalDay,omitempty"`
	DateRange   []string    `json:"dateRange,omitempty"`
	TimeRange   []TimeOfDay `json:"timeRange,omitempty"`
	Weekdays    []int       `json:"weekdays"`
	DaysOfMonth []any       `json:"daysOfMonth"`
	Status      *string     `json:"status,omitempty"`
}

// MaintenanceLink references a monitor or status page attached to a maintenance
type MaintenanceLink struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// StatusPage represents a public status page
type StatusPage struct {
	ID             int      `json:"id,omitempty"`
	Slug           string   `json:"slug"`
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Theme          *string  `json:"theme,omitempty"`
	Published      *bool    `json:"published,omitempty"`
	ShowTags       *bool    `json:"show_tags,omitempty"`
	DomainNameList []string `json:"domain_name_list,omitempty"`
	CustomCSS      *string  `json:"custom_css,omitempty"`
	FooterText     *string  `json:"footer_text,omitempty"`
	ShowPoweredBy  *bool    `json:"show_powered_by,omitempty"`
	ImgDataURL     *string  `json:"img_data_url,omitempty"`
	Monitors       []string `json:"monitors,omitempty"`
}

// Incident is the message pinned to the top of a status page
type Incident struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Style   string `json:"style,omitempty"`
}

// APIKey represents an API key
type APIKey struct {
	ID      int     `json:"id,omitempty"`
	Name    *string `json:"name,omitempty"`
	Expires *string `json:"expires,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

// DockerHost represents a docker daemon docker monitors connect to
type DockerHost struct {
	ID           int     `json:"id,omitempty"`
	Name         *string `json:"name,omitempty"`
	DockerType   *string `json:"dockerType,omitempty"`
	DockerDaemon *string `json:"dockerDaemon,omitempty"`
}

// Settings holds the server wide settings
type Settings struct {
	CheckUpdate         *bool   `json:"checkUpdate,omitempty"`
	CheckBeta           *bool   `json:"checkBeta,omitempty"`
	KeepDataPeriodDays  *int    `json:"keepDataPeriodDays,omitempty"`
	EntryPage           *string `json:"entryPage,omitempty"`
	SearchEngineIndex   *bool   `json:"searchEngineIndex,omitempty"`
	PrimaryBaseURL      *string `json:"primaryBaseURL,omitempty"`
	SteamAPIKey         *string `json:"steamAPIKey,omitempty"`
	TLSExpiryNotifyDays []int   `json:"tlsExpiryNotifyDays,omitempty"`
	DisableAuth         *bool   `json:"disableAuth,omitempty"`
	TrustProxy          *bool   `json:"trustProxy,omitempty"`

	// Password confirms changes to security sensitive settings. It is
	// never returned by the server.
	Password *string `json:"password,omitempty"`
}

// MonitorStatus represents the status and statistics of a monitor
type MonitorStatus struct {
	Status     string     `json:"status"`
	Uptime24h  *float64   `json:"uptime24h,omitempty"`
	Uptime30d  *float64   `json:"uptime30d,omitempty"`
	Uptime1y   *float64   `json:"uptime1y,omitempty"`
	AvgPing24h *float64   `json:"avgPing24h,omitempty"`
	LatestBeat *Heartbeat `json:"latestHeartbeat,omitempty"`
}

// Heartbeat represents a heartbeat/check result
type Heartbeat struct {
	Time   string  `json:"time"`
	Status int     `json:"status"`
	Msg    string  `json:"msg,omitempty"`
	Ping   float64 `json:"ping,omitempty"`
}

// HealthStatus represents the API health status
type HealthStatus struct {
	OK       bool   `json:"ok"`
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// ListMonitorsResponse is the response from listing monitors
type ListMonitorsResponse struct {
	OK       bool      `json:"ok"`
	Monitors []Monitor `json:"monitors"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// GetMonitorResponse is the response from getting a single monitor
type GetMonitorResponse struct {
	OK      bool    `json:"ok"`
	Monitor Monitor `json:"monitor"`
}

// CreateMonitorResponse is the response from creating a monitor
type CreateMonitorResponse struct {
	OK        bool   `json:"ok"`
	MonitorID int    `json:"monitorId"`
	Message   string `json:"msg"`
}

// ListGroupsResponse is the response from listing groups
type ListGroupsResponse struct {
	OK     bool    `json:"ok"`
	Groups []Group `json:"groups"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// GetGroupResponse is the response from getting a single group
type GetGroupResponse struct {
	OK    bool  `json:"ok"`
	Group Group `json:"group"`
}

// CreateGroupResponse is the response from creating a group
type CreateGroupResponse struct {
	OK      bool   `json:"ok"`
	GroupID int    `json:"groupId"`
	Message string `json:"msg"`
}

// ListTagsResponse is the response from listing tags
type ListTagsResponse struct {
	OK   bool  `json:"ok"`
	Tags []Tag `json:"tags"`
}

// GetTagResponse is the response from getting a single tag
type GetTagResponse struct {
	OK  bool `json:"ok"`
	Tag Tag  `json:"tag"`
}

// CreateTagResponse is the response from creating a tag
type CreateTagResponse struct {
	OK  bool `json:"ok"`
	Tag Tag  `json:"tag"`
}

// GetStatusResponse is the response from getting monitor status
type GetStatusResponse struct {
	OK     bool          `json:"ok"`
	Status MonitorStatus `json:"status"`
}

type listNotificationsResponse struct {
	OK            bool           `json:"ok"`
	Notifications []Notification `json:"notifications"`
}

type getNotificationResponse struct {
	OK           bool         `json:"ok"`
	Notification Notification `json:"notification"`
}

type listProxiesResponse struct {
	OK      bool    `json:"ok"`
	Proxies []Proxy `json:"proxies"`
}

type getProxyResponse struct {
	OK    bool  `json:"ok"`
	Proxy Proxy `json:"proxy"`
}

type listMaintenancesResponse struct {
	OK           bool          `json:"ok"`
	Maintenances []Maintenance `json:"maintenances"`
}

type getMaintenanceResponse struct {
	OK          bool        `json:"ok"`
	Maintenance Maintenance `json:"maintenance"`
}

type maintenanceLinksResponse struct {
	OK          bool              `json:"ok"`
	Monitors    []MaintenanceLink `json:"monitors,omitempty"`
	StatusPages []MaintenanceLink `json:"statusPages,omitempty"`
}

type listStatusPagesResponse struct {
	OK          bool         `json:"ok"`
	StatusPages []StatusPage `json:"statusPages"`
}

type getStatusPageResponse struct {
	OK         bool       `json:"ok"`
	StatusPage StatusPage `json:"statusPage"`
}

type listAPIKeysResponse struct {
	OK      bool     `json:"ok"`
	APIKeys []APIKey `json:"apiKeys"`
}

type getAPIKeyResponse struct {
	OK     bool   `json:"ok"`
	APIKey APIKey `json:"apiKey"`
}

// CreateAPIKeyResponse carries the clear text key. The server only returns
// it once.
type CreateAPIKeyResponse struct {
	OK    bool   `json:"ok"`
	KeyID int    `json:"keyId"`
	Key   string `json:"key"`
}

type listDockerHostsResponse struct {
	OK          bool         `json:"ok"`
	DockerHosts []DockerHost `json:"dockerHosts"`
}

type getDockerHostResponse struct {
	OK         bool       `json:"ok"`
	DockerHost DockerHost `json:"dockerHost"`
}

type getSettingsResponse struct {
	OK       bool     `json:"ok"`
	Settings Settings `json:"settings"`
}

// createResponse covers the create endpoints that only return the new id
type createResponse struct {
	OK      bool   `json:"ok"`
	ID      int    `json:"id"`
	Message string `json:"msg"`
}
