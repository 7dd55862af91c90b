// Package environment names the deployment environments the service runs in
// (development, staging, production).
//
// Parse accepts the full names and the short aliases used in env files:
//
//	env := environment.Parse(os.Getenv("BLUEPRINT_ENV")) // "prod" -> Production
//	if env.IsProduction() {
//		// ...
//	}
//
// Unknown values fall back to Development so a missing variable never stops
// the process from starting.
package environment
