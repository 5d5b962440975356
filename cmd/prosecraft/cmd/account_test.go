package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosecraft/prosecraft/internal/account"
	"github.com/prosecraft/prosecraft/internal/ui"
)

func TestChangedFields(t *testing.T) {
	acct := account.Account{Name: "Ada Lovelace", Email: "ada@example.com", Location: "London"}

	upd := changedFields(acct, "Ada Lovelace", "ADA@example.com", "London")
	assert.Nil(t, upd.Name)
	assert.Nil(t, upd.Email)
	assert.Nil(t, upd.Location)

	upd = changedFields(acct, " Ada King ", "ada@example.com", "Marylebone")
	require.NotNil(t, upd.Name)
	assert.Equal(t, " Ada King ", *upd.Name)
	assert.Nil(t, upd.Email)
	require.NotNil(t, upd.Location)
	assert.Equal(t, "Marylebone", *upd.Location)
}

func TestAccountMenuItems(t *testing.T) {
	ids := func(items []ui.MenuItem) []string {
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = item.ID
		}
		return out
	}

	assert.Equal(t, []string{"login", "register"}, ids(accountMenuItems(false)))
	assert.Equal(t, []string{"show", "update", "logout"}, ids(accountMenuItems(true)))

	for _, signedIn := range []bool{false, true} {
		for _, item := range accountMenuItems(signedIn) {
			assert.NotNil(t, accountActionCmd(item.ID), item.ID)
		}
	}
	assert.Nil(t, accountActionCmd(ui.MenuActionBack))
}

func TestHomeMenuItems(t *testing.T) {
	seen := map[string]bool{}
	for _, item := range homeMenuItems() {
		assert.False(t, seen[item.ID], "duplicate %s", item.ID)
		seen[item.ID] = true
	}
	for _, id := range []string{"analyze:grammar", "analyze:plagiarism", "appearance", "account", "doctor", "about", "exit"} {
		assert.True(t, seen[id], id)
	}
}
