// containers.go
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

package testutil

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/localnerve/jam-build-classifieds/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DBContainer is a disposable database server
type DBContainer struct {
	Container testcontainers.Container
	Config    *config.Config
}

// Terminate stops and removes the container
func (c *DBContainer) Terminate(ctx context.Context) error {
	if c == nil || c.Container == nil {
		return nil
	}
	return c.Container.Terminate(ctx)
}

// StartDatabase runs image as a dbType server (postgres, mysql or mariadb) with its data on tmpfs.
// The returned config points at the mapped port.
func StartDatabase(ctx context.Context, dbType, image string) (*DBContainer, error) {
	const (
		user     = "classifieds"
		password = "classifieds"
		dbName   = "classifieds"
	)

	var (
		port    nat.Port
		env     map[string]string
		dataDir string
		ready   wait.Strategy
	)

	switch dbType {
	case "postgres":
		port = "5432/tcp"
		env = map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": password,
			"POSTGRES_DB":       dbName,
		}
		dataDir = "/var/lib/postgresql/data"
		ready = wait.ForLog("database system is ready to accept connections").WithOccurrence(2)
	case "mysql", "mariadb":
		port = "3306/tcp"
		env = map[string]string{
			"MYSQL_ROOT_PASSWORD": password,
			"MYSQL_DATABASE":      dbName,
			"MYSQL_USER":          user,
			"MYSQL_PASSWORD":      password,
		}
		dataDir = "/var/lib/mysql"
		ready = wait.ForListeningPort(port)
	default:
		return nil, fmt.Errorf("unsupported container database type: %s", dbType)
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(port)},
			Env:          env,
			HostConfigModifier: func(hostConfig *container.HostConfig) {
				hostConfig.Tmpfs = map[string]string{dataDir: "rw"}
			},
			WaitingFor: wait.ForAll(ready, wait.ForListeningPort(port)).WithDeadline(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start %s container: %w", dbType, err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, err
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, err
	}

	return &DBContainer{
		Container: c,
		Config: &config.Config{
			Environment:       "test",
			DBType:            dbType,
			DBHost:            host,
			DBPort:            mapped.Port(),
			DBDatabase:        dbName,
			DBUser:            user,
			DBPassword:        password,
			DBConnectionLimit: 5,
			DBLogLevel:        "silent",
			JWTSecret:         "test-secret",
			SessionTTL:        time.Hour,
			ResetTokenTTL:     time.Hour,
			RateLimitStore:    "database",
			LogFormat:         "text",
		},
	}, nil
}

// ContainerImage returns POSTGRES_IMAGE, empty when container tests should be skipped
func ContainerImage() string {
	return os.Getenv("POSTGRES_IMAGE")
}
