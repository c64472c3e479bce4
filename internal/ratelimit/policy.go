// policy.go
//
// A classifieds marketplace data service built on the jam-build data service stack
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-classifieds.
// jam-build-classifieds is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-classifieds is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-classifieds.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package ratelimit

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tier names a policy class shared by several routes
type Tier string

const (
	TierAuth     Tier = "auth"
	TierAPI      Tier = "api"
	TierMutation Tier = "mutation"
)

// Policies maps each tier to its budget
type Policies map[Tier]Policy

// DefaultPolicies returns the built-in budgets
func DefaultPolicies() Policies {
	return Policies{
		TierAuth:     {MaxRequests: 5, Window: time.Minute},
		TierAPI:      {MaxRequests: 60, Window: time.Minute},
		TierMutation: {MaxRequests: 20, Window: time.Minute},
	}
}

// LoadPolicies returns the defaults overridden by the YAML file at path.
// An empty path returns the defaults.
//
//	auth:
//	  maxRequests: 5
//	  window: 1m
func LoadPolicies(path string) (Policies, error) {
	policies := DefaultPolicies()
	if path == "" {
		return policies, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate limit policy file: %w", err)
	}

	var overrides map[Tier]Policy
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse rate limit policy file: %w", err)
	}

	for tier, p := range overrides {
		if _, ok := policies[tier]; !ok {
			return nil, fmt.Errorf("unknown rate limit tier %q", tier)
		}
		if p.MaxRequests < 1 || p.Window <= 0 {
			return nil, fmt.Errorf("rate limit tier %q needs a positive maxRequests and window", tier)
		}
		policies[tier] = p
	}
	return policies, nil
}

// For returns the policy of tier, falling back to the api tier
func (p Policies) For(tier Tier) Policy {
	if policy, ok := p[tier]; ok {
		return policy
	}
	return p[TierAPI]
}
