/*
Copyright 2025 Leadpool Authors.

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

package leadpool

import "github.com/leadpool/leadpool/model"

// Daily delivery quotas per plan tier. An unknown tier falls back to the
// starter quota rather than erroring: the roster is synced from an external
// billing system and may briefly carry tiers this engine has not learned yet.
var tierQuotas = map[string]int{
	model.TierStarter:      2,
	model.TierStandard:     5,
	model.TierProfessional: 10,
	model.TierEnterprise:   20,
}

// QuotaForTier resolves a plan tier to its daily delivery quota.
func QuotaForTier(tier string) int {
	if quota, ok := tierQuotas[tier]; ok {
		return quota
	}
	return tierQuotas[model.TierStarter]
}
