package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notice-board/internal/domain"
)

func TestIsValidUniversityID(t *testing.T) {
	valid := []string{"2021/ICT/075", "2019/BSC/1", "2023/a/x9"}
	for _, id := range valid {
		assert.True(t, domain.IsValidUniversityID(id), id)
	}

	invalid := []string{"", "2021-ICT-075", "21/ICT/075", "2021/ICTXX/075", "2021/ICT/07500", "2021/IC3/075"}
	for _, id := range invalid {
		assert.False(t, domain.IsValidUniversityID(id), id)
	}
}

func TestUserHasRole(t *testing.T) {
	admin := &domain.User{Role: domain.RoleAdmin}
	moderator := &domain.User{Role: domain.RoleModerator}
	student := &domain.User{Role: domain.RoleStudent}

	assert.True(t, admin.HasRole("student"))
	assert.True(t, admin.HasRole("admin"))
	assert.True(t, moderator.HasRole("moderator"))
	assert.True(t, moderator.HasRole("student"))
	assert.False(t, moderator.HasRole("admin"))
	assert.True(t, student.HasRole("student"))
	assert.False(t, student.HasRole("moderator"))
}
