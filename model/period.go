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

package model

import (
	"fmt"
	"regexp"
	"time"
)

// Pools and the distribution ledger are scoped to calendar months in a fixed
// UTC+8 offset. The offset is fixed, not a named zone, so period boundaries
// never move with DST.
var periodLocation = time.FixedZone("UTC+8", 8*60*60)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// PeriodLocation returns the fixed offset periods are anchored to. Schedulers
// use it so that firing times line up with period boundaries.
func PeriodLocation() *time.Location {
	return periodLocation
}

// CurrentPeriod derives the period key ("YYYY-MM") for the given instant.
// Callers compute the key once from a clock and thread it explicitly through
// the engine; the engine itself never reads the wall clock.
func CurrentPeriod(now time.Time) string {
	return now.In(periodLocation).Format("2006-01")
}

// ValidatePeriod rejects anything that is not a well-formed "YYYY-MM" key.
func ValidatePeriod(period string) error {
	if !periodPattern.MatchString(period) {
		return fmt.Errorf("invalid period key %q, expected YYYY-MM", period)
	}
	return nil
}
