package openfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAssignsLowestFreeDescriptor(t *testing.T) {
	table := New(4)

	fd0, err := table.Open(5, 100)
	require.NoError(t, err)
	require.Equal(t, 0, fd0)

	fd1, err := table.Open(6, 0)
	require.NoError(t, err)
	require.Equal(t, 1, fd1)

	require.NoError(t, table.Close(fd0))

	fd2, err := table.Open(7, 0)
	require.NoError(t, err)
	require.Equal(t, 0, fd2)
}

func TestOpenFailsWhenTableIsFull(t *testing.T) {
	table := New(2)

	_, err := table.Open(1, 0)
	require.NoError(t, err)
	_, err = table.Open(2, 0)
	require.NoError(t, err)

	_, err = table.Open(3, 0)
	require.Error(t, err)
}

func TestIsOpenTracksEveryLiveDescriptor(t *testing.T) {
	table := New(4)
	require.False(t, table.IsOpen(9))

	_, err := table.Open(9, 0)
	require.NoError(t, err)
	require.True(t, table.IsOpen(9))
}

func TestGetAndUpdateRoundTripSlotState(t *testing.T) {
	table := New(4)
	fd, err := table.Open(3, 50)
	require.NoError(t, err)

	slot, err := table.Get(fd)
	require.NoError(t, err)
	require.Equal(t, Slot{Inode: 3, Size: 50, Pos: 0}, slot)

	slot.Pos = 10
	require.NoError(t, table.Update(fd, slot))

	got, err := table.Get(fd)
	require.NoError(t, err)
	require.Equal(t, 10, got.Pos)
}

func TestOperationsOnUnopenedOrOutOfRangeFdFail(t *testing.T) {
	table := New(2)

	_, err := table.Get(0)
	require.Error(t, err)

	_, err = table.Get(5)
	require.Error(t, err)

	require.Error(t, table.Close(0))
}
