// ratelimit.go
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

package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-classifieds/internal/ratelimit"
	"github.com/localnerve/jam-build-classifieds/internal/types"
	"github.com/localnerve/jam-build-classifieds/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "classifieds_rate_limited_total",
	Help: "Requests rejected by the rate limiter, by route tag",
}, []string{"route"})

// RateLimit counts the request against clientIP:routeTag and rejects it once the policy is exhausted.
// It must be the first handler on the route.
func RateLimit(limiter *ratelimit.Limiter, routeTag string, policy ratelimit.Policy, trustProxy bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := ratelimit.Key(utils.ClientIP(c, trustProxy), routeTag)
		res := limiter.Check(c.UserContext(), key, policy)

		c.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			rateLimitedTotal.WithLabelValues(routeTag).Inc()
			retry := int(time.Until(res.ResetAt).Seconds()) + 1
			if retry < 1 {
				retry = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retry))
			return types.RateLimited()
		}
		return c.Next()
	}
}
