package rbac

// RolePermissions is the default policy. Signed-up users are students;
// admins are configured by email.
var RolePermissions = map[string][]string{
	"student": {
		"test:view",
		"test:submit",
		"submission:view-own",
		"user:edit_phone",
	},
	"admin": {
		"*", // everything
	},
}
