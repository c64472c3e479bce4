// notifier.go
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

package services

import (
	"context"
	"log/slog"
	"time"
)

// ResetNotifier delivers password reset links
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, email, link string, expires time.Time) error
}

// LogNotifier records that a reset was issued without delivering it.
// The link is not logged.
type LogNotifier struct{}

// SendPasswordReset implements ResetNotifier
func (LogNotifier) SendPasswordReset(ctx context.Context, email, link string, expires time.Time) error {
	slog.InfoContext(ctx, "password reset issued", "email", email, "expires", expires.Format(time.RFC3339))
	return nil
}
