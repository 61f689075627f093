package entity

// User rows are created at registration and immutable afterwards. There is
// no credential: login is an email lookup only.
type User struct {
	BaseSimple
	Email    string `db:"email"`
	Username string `db:"username"`
}
