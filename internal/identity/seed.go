package identity

// seedUsers returns the built-in demo users. They exist so the seeded
// story collection has real authors and commenters on a fresh install.
func seedUsers() map[string]User {
	return map[string]User{
		"user-2": {ID: "user-2", Name: "علي حسن", Avatar: defaultAvatar("user-2")},
		"user-3": {ID: "user-3", Name: "فاطمة الزهراء", Avatar: defaultAvatar("user-3")},
		"user-4": {ID: "user-4", Name: "عمر شريف", Avatar: defaultAvatar("user-4")},
	}
}
