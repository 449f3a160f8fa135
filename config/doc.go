// SPDX-License-Identifier: MIT

// Package config loads the runtime settings of the uncertainty kernel.
//
// Sources, lowest precedence first:
//
//	1. Built-in defaults (Default).
//	2. A YAML file named by PESTOOLS_CONFIG_FILE.
//	3. Environment variables prefixed with PESTOOLS_, optionally seeded from .env files.
//
// Variables already present in the process environment are never overwritten
// by a .env file. The merged result is validated before it is returned.
//
// Example environment:
//
//	PESTOOLS_CODEC_BYTE_ORDER=big
//	PESTOOLS_COVARIANCE_RCOND_THRESHOLD=1e-10
//	PESTOOLS_LOGGING_LEVEL=debug
package config
