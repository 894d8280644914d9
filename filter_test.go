package apptdash_test

import (
	"testing"

	"github.com/fwojciec/apptdash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterAppointments(t *testing.T) {
	t.Parallel()

	haircut := &apptdash.Appointment{ID: "1", CustomerName: "John", ServiceType: "Haircut"}
	massage := &apptdash.Appointment{ID: "2", CustomerName: "Jane", ServiceType: "Massage"}
	appts := []*apptdash.Appointment{haircut, massage}

	t.Run("matches service type case-insensitively", func(t *testing.T) {
		t.Parallel()

		result := apptdash.FilterAppointments(appts, "hair")

		require.Len(t, result, 1)
		assert.Same(t, haircut, result[0])
	})

	t.Run("matches customer name", func(t *testing.T) {
		t.Parallel()

		result := apptdash.FilterAppointments(appts, "JAN")

		require.Len(t, result, 1)
		assert.Same(t, massage, result[0])
	})

	t.Run("empty term matches everything", func(t *testing.T) {
		t.Parallel()

		result := apptdash.FilterAppointments(appts, "")

		assert.Equal(t, appts, result)
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		t.Parallel()

		result := apptdash.FilterAppointments(appts, "nails")

		assert.Empty(t, result)
	})

	t.Run("preserves order", func(t *testing.T) {
		t.Parallel()

		result := apptdash.FilterAppointments(appts, "j")

		require.Len(t, result, 2)
		assert.Same(t, haircut, result[0])
		assert.Same(t, massage, result[1])
	})
}
