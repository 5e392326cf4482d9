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

package main

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/leadpool/leadpool/model"
)

// generatePoolCommands defines a one-shot "generate-pool" command for
// operators. With no --period flag it targets the current period.
func generatePoolCommands(b *leadpoolInstance) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "generate-pool",
		Short: "generate the monthly pool for a period",
		Run: func(cmd *cobra.Command, args []string) {
			if period == "" {
				period = model.CurrentPeriod(time.Now())
			}

			result, err := b.leadpool.GeneratePool(context.Background(), period)
			if err != nil {
				log.Fatal(err)
			}
			log.Printf("pool %s: %s (%d members)", result.Period, result.Reason, result.Count)
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "period key (YYYY-MM), defaults to the current period")
	return cmd
}

// distributeCommands defines a one-shot "distribute" command running a
// distribution pass against a period's pool.
func distributeCommands(b *leadpoolInstance) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "run a distribution pass for a period",
		Run: func(cmd *cobra.Command, args []string) {
			if period == "" {
				period = model.CurrentPeriod(time.Now())
			}

			result, err := b.leadpool.DistributeForPeriod(context.Background(), period)
			if err != nil {
				log.Fatal(err)
			}
			log.Printf("distribution %s: %d subscribers, %d leads delivered",
				result.Period, len(result.PerSubscriber), result.TotalDistributed)
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "period key (YYYY-MM), defaults to the current period")
	return cmd
}
