package seeder

// Defaults returns the admin seeder, followed by demo data when demo is set.
func Defaults(admin AdminSeeder, demo bool) []Seeder {
	out := []Seeder{admin}
	if demo {
		out = append(out, DemoSeeder{})
	}
	return out
}
