// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Unset fields receive defaults matching the reference 128x32 panel setup,
// so a minimal config only needs the station section:
//
//	station:
//	  from: 登戸
//	  to: [新宿, 町田]
package config
