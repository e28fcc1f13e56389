package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFromPosition(t *testing.T) {
	tests := []struct {
		position string
		want     string
	}{
		{"Gerente General", RoleGerente},
		{"GERENTE DE TIENDA", RoleGerente},
		{"Pasante de Bodega", RolePasante},
		{"pasante", RolePasante},
		{"Cajera", RoleEmpleado},
		{"Vendedor", RoleEmpleado},
		{"", RoleEmpleado},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoleFromPosition(tt.position), tt.position)
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RolePasante))
	assert.False(t, ValidRole("superuser"))
}
