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

package manifest

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeSpec decodes a document spec into target, a pointer to a typed
// record. Field names follow the record's json tags. Unknown names are an
// error so a typo can never turn into a permanent difference.
func DecodeSpec(spec map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Squash:      true,
		Result:      target,
	})
	if err != nil {
		return fmt.Errorf("failed to create spec decoder: %w", err)
	}

	if err := dec.Decode(spec); err != nil {
		return fmt.Errorf("failed to decode spec: %w", err)
	}
	return nil
}
