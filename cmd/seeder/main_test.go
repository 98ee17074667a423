package main

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

func TestFakeCustomer(t *testing.T) {
	f := gofakeit.New(42)

	for i := 0; i < 50; i++ {
		c := fakeCustomer(f)

		assert.NotEmpty(t, c.Name)
		assert.Contains(t, c.Email, "@")
		assert.LessOrEqual(t, len(c.SocialMedia), 3)
		for _, sm := range c.SocialMedia {
			assert.Contains(t, platforms, sm.SocialMediaName)
			assert.NotEmpty(t, sm.Username)
			assert.Zero(t, sm.ID)
		}
	}
}

func TestFakeCustomerIsDeterministicPerSeed(t *testing.T) {
	assert.Equal(t, fakeCustomer(gofakeit.New(7)), fakeCustomer(gofakeit.New(7)))
}
