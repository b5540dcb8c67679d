// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Jared Redh. All rights reserved.

package app

import (
	"github.com/jredh-dev/foodshare/services/foodshare/internal/listing"
	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

// --- Tea messages ---

type foodsMsg struct {
	foods []models.Listing
	err   error
}

type loginResultMsg struct {
	user models.User
	err  error
}

type transitionMsg struct {
	trigger listing.Trigger
	listing models.Listing
	notice  listing.Notice
	err     error
}
