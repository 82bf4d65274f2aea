// Package randbp provides some random generator related features:
//
// 1. A thread-safe, properly seeded global *math/rand.Rand implementation.
//
// 2. Helper functions for common use cases.
package randbp
