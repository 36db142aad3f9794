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
	"sort"
	"sync"
)

// NotificationProviders lists the settings each notification provider type
// accepts
type NotificationProviders struct {
	mu     sync.RWMutex
	fields map[string]map[string]struct{}
}

// NewNotificationProviders returns an empty provider set
func NewNotificationProviders() *NotificationProviders {
	return &NotificationProviders{fields: map[string]map[string]struct{}{}}
}

// DefaultNotificationProviders knows the commonly used Uptime Kuma providers
func DefaultNotificationProviders() *NotificationProviders {
	p := NewNotificationProviders()
	for name, fields := range map[string][]string{
		"discord":    {"discordWebhookUrl", "discordUsername", "discordPrefixMessage"},
		"gotify":     {"gotifyserverurl", "gotifyapplicationToken", "gotifyPriority"},
		"matrix":     {"homeserverUrl", "internalRoomId", "accessToken"},
		"mattermost": {"mattermostWebhookUrl", "mattermostusername", "mattermostchannel", "mattermosticonurl", "mattermosticonemo"},
		"ntfy":       {"ntfyserverurl", "ntfytopic", "ntfyPriority", "ntfyusername", "ntfypassword"},
		"PagerDuty":  {"pagerdutyIntegrationUrl", "pagerdutyIntegrationKey", "pagerdutyPriority", "pagerdutyAutoResolve"},
		"pushover":   {"pushoveruserkey", "pushoverapptoken", "pushoversounds", "pushoverpriority", "pushovertitle", "pushoverdevice"},
		"slack":      {"slackwebhookURL", "slackchannel", "slackusername", "slackiconemo", "slackchannelnotify"},
		"smtp":       {"smtpHost", "smtpPort", "smtpSecure", "smtpIgnoreTLSError", "smtpUsername", "smtpPassword", "smtpFrom", "smtpTo", "smtpCC", "smtpBCC"},
		"teams":      {"webhookUrl"},
		"telegram":   {"telegramBotToken", "telegramChatID", "telegramSendSilently", "telegramProtectContent"},
		"webhook":    {"webhookURL", "webhookContentType", "webhookAdditionalHeaders", "webhookCustomBody"},
	} {
		_ = p.Register(name, fields...)
	}
	return p
}

// Register adds a provider type and its settings
func (p *NotificationProviders) Register(name string, fields ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.fields[name]; exists {
		return fmt.Errorf("notification provider %q already registered", name)
	}
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	p.fields[name] = set
	return nil
}

// Types returns the known provider types, sorted
func (p *NotificationProviders) Types() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	types := make([]string, 0, len(p.fields))
	for name := range p.fields {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// Check verifies that every key in settings belongs to the provider type
func (p *NotificationProviders) Check(providerType string, settings map[string]any) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	allowed, ok := p.fields[providerType]
	if !ok {
		return fmt.Errorf("unknown notification provider %q", providerType)
	}

	var unknown []string
	for k := range settings {
		if _, ok := allowed[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("notification provider %q does not accept %v", providerType, unknown)
	}
	return nil
}
