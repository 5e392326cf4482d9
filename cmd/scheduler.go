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

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/leadpool/leadpool/internal/notification"
	"github.com/leadpool/leadpool/model"
)

// schedulerCommands defines the "scheduler" command. It fires pool generation
// on the first day of each month and a distribution run every day, both in
// the business time zone. Every operation is idempotent, so an overlapping or
// repeated firing converges to the same state.
func schedulerCommands(b *leadpoolInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "start leadpool scheduler",
		Run: func(cmd *cobra.Command, args []string) {
			c := cron.New(cron.WithLocation(model.PeriodLocation()))

			_, err := c.AddFunc("0 0 1 * *", func() {
				period := model.CurrentPeriod(time.Now())
				result, err := b.leadpool.GeneratePool(context.Background(), period)
				if err != nil {
					notification.NotifyError(err)
					logrus.Errorf("scheduled pool generation for %s failed: %v", period, err)
					return
				}
				logrus.Infof("scheduled pool generation for %s: %s (%d members)", period, result.Reason, result.Count)
			})
			if err != nil {
				log.Fatal(err)
			}

			_, err = c.AddFunc("0 1 * * *", func() {
				period := model.CurrentPeriod(time.Now())
				result, err := b.leadpool.DistributeForPeriod(context.Background(), period)
				if err != nil {
					notification.NotifyError(err)
					logrus.Errorf("scheduled distribution for %s failed: %v", period, err)
					return
				}
				logrus.Infof("scheduled distribution for %s delivered %d leads", period, result.TotalDistributed)
			})
			if err != nil {
				log.Fatal(err)
			}

			log.Println("Starting scheduler")
			c.Run()
		},
	}

	return cmd
}
