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

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndAddDefaults(t *testing.T) {
	cnf := &Configuration{
		DataSource: DataSourceConfig{Dns: "postgres://localhost:5432/leadpool"},
		Redis:      RedisConfig{Dns: "localhost:6379"},
	}

	require.NoError(t, cnf.validateAndAddDefaults())

	assert.Equal(t, "Leadpool Server", cnf.ProjectName)
	assert.Equal(t, DEFAULT_PORT, cnf.Server.Port)
	assert.Equal(t, DEFAULT_POOL_SIZE, cnf.Pool.Size)
	assert.Equal(t, "new:webhook", cnf.Queue.WebhookQueue)
}

func TestValidateAndAddDefaults_MissingDataSource(t *testing.T) {
	cnf := &Configuration{Redis: RedisConfig{Dns: "localhost:6379"}}
	assert.Error(t, cnf.validateAndAddDefaults())
}

func TestValidateAndAddDefaults_NegativePoolSize(t *testing.T) {
	cnf := &Configuration{
		DataSource: DataSourceConfig{Dns: "postgres://localhost:5432/leadpool"},
		Redis:      RedisConfig{Dns: "localhost:6379"},
		Pool:       PoolConfig{Size: -1},
	}
	assert.Error(t, cnf.validateAndAddDefaults())
}

func TestEnvOverrides(t *testing.T) {
	os.Setenv("LEADPOOL_DATA_SOURCE_DNS", "postgres://env-host:5432/leadpool")
	os.Setenv("LEADPOOL_REDIS_DNS", "env-redis:6379")
	os.Setenv("LEADPOOL_POOL_SIZE", "250")
	defer func() {
		os.Unsetenv("LEADPOOL_DATA_SOURCE_DNS")
		os.Unsetenv("LEADPOOL_REDIS_DNS")
		os.Unsetenv("LEADPOOL_POOL_SIZE")
	}()

	require.NoError(t, loadConfigFromFile("does-not-exist.json"))

	cnf, err := Fetch()
	require.NoError(t, err)
	assert.Equal(t, "postgres://env-host:5432/leadpool", cnf.DataSource.Dns)
	assert.Equal(t, "env-redis:6379", cnf.Redis.Dns)
	assert.Equal(t, 250, cnf.Pool.Size)
}

func TestMockConfig(t *testing.T) {
	MockConfig(&Configuration{
		DataSource: DataSourceConfig{Dns: "mock"},
		Redis:      RedisConfig{Dns: "mock"},
	})

	cnf, err := Fetch()
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_POOL_SIZE, cnf.Pool.Size)
}
