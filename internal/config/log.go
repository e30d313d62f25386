package config

import "github.com/rs/zerolog"

// MarshalZerologObject logs the highlights of a profile. Secrets and
// credentials are left out.
func (s *Settings) MarshalZerologObject(e *zerolog.Event) {
	db := s.DefaultDatabase()
	layer := s.DefaultChannelLayer()

	e.Str("environment", s.Environment.String()).
		Bool("debug", s.Debug).
		Str("db_engine", db.Engine).
		Str("db_host", db.Host).
		Str("db_name", db.Name).
		Int("db_conn_max_age", db.ConnMaxAge).
		Str("channel_backend", layer.Backend).
		Strs("allowed_hosts", s.AllowedHosts).
		Str("bundle_dir", s.WebpackLoader[webpackAlias].BundleDirName)
}
