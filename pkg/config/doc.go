// Package config loads attachlink's settings from embedded defaults, the
// user's config file and the environment, in that order.
package config
