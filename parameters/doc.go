// Package parameters loads session parameters from TOML files and CMIS_*
// environment variables.
package parameters
