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
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/leadpool/leadpool"
	"github.com/leadpool/leadpool/config"
	"github.com/leadpool/leadpool/database"
	"github.com/leadpool/leadpool/internal/notification"
)

// Leadpool represents the CLI application, encapsulating the root Cobra command.
type Leadpool struct {
	cmd *cobra.Command
}

// leadpoolInstance holds the engine instance and its configuration for the
// lifetime of a command run.
type leadpoolInstance struct {
	leadpool *leadpool.Leadpool
	cnf      *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun sets up the configuration and initializes the engine before running
// any command.
func preRun(app *leadpoolInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("leadpool.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		newLeadpool, err := setupLeadpool(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.leadpool = newLeadpool
		app.cnf = cnf

		return nil
	}
}

// setupLeadpool creates and initializes a new engine instance backed by the
// configured data source.
func setupLeadpool(cfg *config.Configuration) (*leadpool.Leadpool, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting datasource: %v", err)
	}

	newLeadpool, err := leadpool.NewLeadpool(db)
	if err != nil {
		return nil, fmt.Errorf("error creating leadpool: %v", err)
	}
	return newLeadpool, nil
}

// NewCLI creates the command-line interface for the leadpool application.
func NewCLI() *Leadpool {
	var configFile string
	b := &leadpoolInstance{}

	var rootCmd = &cobra.Command{
		Use:   "leadpool",
		Short: "lead queue and monthly pool distribution engine",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./leadpool.json", "Configuration file for leadpool")

	rootCmd.PersistentPreRunE = preRun(b)

	rootCmd.AddCommand(serverCommands(b))
	rootCmd.AddCommand(workerCommands(b))
	rootCmd.AddCommand(schedulerCommands(b))
	rootCmd.AddCommand(generatePoolCommands(b))
	rootCmd.AddCommand(distributeCommands(b))

	return &Leadpool{cmd: rootCmd}
}

// executeCLI runs the root command, handling any errors that occur during execution.
func (w Leadpool) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
