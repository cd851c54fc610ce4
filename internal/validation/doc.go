// Feedgraph - Social Feed Recommendation and Trending Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedgraph

// Custom tags:
//
//   - entity_id: user or post identifier (letters, digits, '_', '.', ':', '-'; 1-64 chars)
//
// The validator is a process-wide singleton; struct metadata is cached after
// the first validation of each type.
package validation
