package user

import (
	"errors"
	"fmt"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

func TestDuplicateKeyField(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			"username constraint",
			&mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'bob' for key 'users.idx_users_username'"},
			"username",
		},
		{
			"email constraint",
			&mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'bob@example.com' for key 'users.idx_users_email'"},
			"email",
		},
		{
			"wrapped driver error",
			fmt.Errorf("create user: %w", &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'bob' for key 'users.idx_users_username'"}),
			"username",
		},
		{
			"other mysql error",
			&mysqlDriver.MySQLError{Number: 1045, Message: "Access denied"},
			"",
		},
		{
			// The translated error carries no constraint name, so the
			// email default applies.
			"gorm duplicate sentinel",
			gorm.ErrDuplicatedKey,
			"email",
		},
		{
			"unrelated error",
			errors.New("connection reset"),
			"",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := duplicateKeyField(tc.err); got != tc.want {
				t.Errorf("duplicateKeyField(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}
