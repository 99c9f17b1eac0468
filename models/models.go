// SPDX-License-Identifier: GPL-3.0-only

package models

// AllModels lists every table the migrations create, in creation order.
var AllModels []any
