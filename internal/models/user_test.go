package models

import (
	"testing"
)

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{"admin role", RoleAdmin, true},
		{"provider role", RoleProvider, true},
		{"customer role", RoleCustomer, true},
		{"invalid role", "manager", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidRole(tt.role)
			if result != tt.expected {
				t.Errorf("IsValidRole(%s) = %v, want %v", tt.role, result, tt.expected)
			}
		})
	}
}

func TestUser_HasPermission(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	provider := &User{Role: RoleProvider}
	customer := &User{Role: RoleCustomer}

	tests := []struct {
		name     string
		user     *User
		action   string
		expected bool
	}{
		// Admin - everything
		{"admin can delete vehicle", admin, "delete_vehicle", true},
		{"admin can manage users", admin, "manage_users", true},
		{"admin can create maintenance", admin, "create_maintenance", true},

		// Provider - appointments and maintenance, read-only on the rest
		{"provider can view vehicles", provider, "view_vehicles", true},
		{"provider can update appointment", provider, "update_appointment", true},
		{"provider can create maintenance", provider, "create_maintenance", true},
		{"provider can delete maintenance", provider, "delete_maintenance", true},
		{"provider can view reviews", provider, "view_reviews", true},
		{"provider cannot create vehicle", provider, "create_vehicle", false},
		{"provider cannot create review", provider, "create_review", false},
		{"provider cannot manage users", provider, "manage_users", false},

		// Customer - own vehicles, appointments, reviews
		{"customer can create vehicle", customer, "create_vehicle", true},
		{"customer can delete vehicle", customer, "delete_vehicle", true},
		{"customer can create appointment", customer, "create_appointment", true},
		{"customer can create review", customer, "create_review", true},
		{"customer can view maintenance", customer, "view_maintenance", true},
		{"customer cannot create maintenance", customer, "create_maintenance", false},
		{"customer cannot manage users", customer, "manage_users", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.user.HasPermission(tt.action)
			if result != tt.expected {
				t.Errorf("User with role %s HasPermission(%s) = %v, want %v",
					tt.user.Role, tt.action, result, tt.expected)
			}
		})
	}
}
