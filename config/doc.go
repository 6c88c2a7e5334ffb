// Package config loads the service and CLI configuration with Viper.
//
// Sources, lowest precedence first: built-in defaults, a YAML file, a .env
// file in the working directory, and environment variables. Every key can be
// overridden with TEAMOPS_<SECTION>_<KEY>; the API and socket URLs also honour
// NEXT_PUBLIC_API_URL and URL_IO.
//
//	app_name: teamops
//	run_mode: release
//	server:
//	  host: 0.0.0.0
//	  port: 3000
//	api:
//	  base_url: http://localhost:3001/api
//	  timeout: 30s
//	realtime:
//	  url: http://localhost:3001
//	  namespace: /notifications
//	  reconnection_delay: 1s
//	  reconnection_attempts: 5
//	session:
//	  store: file        # memory | file | redis
//	  path: ~/.teamops/session.json
//	data:
//	  redis:
//	    addr: 127.0.0.1:6379
//	pdf:
//	  workers: 4
//	  timeout: 30s
//
// Watch reloads the file on change and hands the fresh Config to a callback.
package config
