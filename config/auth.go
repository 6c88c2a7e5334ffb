package config

import "github.com/spf13/viper"

// Auth auth config struct
type Auth struct {
	JWT *JWT
}

// getAuth returns the auth config.
func getAuth(v *viper.Viper) *Auth {
	return &Auth{
		JWT: getJWT(v),
	}
}

// JWT jwt config struct
// An empty secret means bearer tokens are decoded without signature checks.
type JWT struct {
	Secret string
}

// getJWT returns the jwt config.
func getJWT(v *viper.Viper) *JWT {
	return &JWT{
		Secret: v.GetString("auth.jwt.secret"),
	}
}
