package topology

import (
	"context"
	"testing"

	"github.com/ValentinKolb/kvconn/lib/address"
	"github.com/ValentinKolb/kvconn/lib/transport"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serverAddress returns the address of a miniredis server
func serverAddress(t *testing.T, s *miniredis.Miniredis) address.ServerAddress {
	t.Helper()
	addrs, err := address.Resolve(s.Addr())
	require.NoError(t, err)
	return addrs[0]
}

func TestCreateStandaloneDirect(t *testing.T) {
	s := miniredis.RunT(t)
	src := Factory{Pooling: false}.CreateStandalone(serverAddress(t, s), "", transport.DefaultOptions())

	require.NotNil(t, src.Direct)
	assert.Nil(t, src.Supplier)
	defer src.Direct.Close()

	assert.Equal(t, KindStandalone, src.Direct.Kind())
	client, ok := src.Direct.Standalone()
	assert.True(t, ok)
	assert.NotNil(t, client)
	_, ok = src.Direct.Cluster()
	assert.False(t, ok)

	ctx := context.Background()
	require.NoError(t, src.Direct.Commands().Set(ctx, "k", "v", 0).Err())
	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestCreateStandalonePooled(t *testing.T) {
	s := miniredis.RunT(t)
	src := Factory{Pooling: true}.CreateStandalone(serverAddress(t, s), "", transport.DefaultOptions())

	assert.Nil(t, src.Direct)
	require.NotNil(t, src.Supplier)

	conn, err := src.Supplier(context.Background())
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, KindStandalone, conn.Kind())

	client, _ := conn.Standalone()
	assert.Equal(t, 1, client.Options().PoolSize)
}

func TestSupplierReportsConnectFailure(t *testing.T) {
	s := miniredis.RunT(t)
	addr := serverAddress(t, s)
	s.Close()

	opts := transport.DefaultOptions()
	opts.ConnectionTimeoutMs = 200
	src := Factory{Pooling: true}.CreateStandalone(addr, "", opts)

	conn, err := src.Supplier(context.Background())
	assert.Error(t, err)
	assert.Nil(t, conn)
}

func TestSupplierReportsAuthFailure(t *testing.T) {
	s := miniredis.RunT(t)
	s.RequireAuth("secret")
	addr := serverAddress(t, s)

	_, err := Factory{Pooling: true}.CreateStandalone(addr, "wrong", transport.DefaultOptions()).Supplier(context.Background())
	assert.Error(t, err)

	conn, err := Factory{Pooling: true}.CreateStandalone(addr, "secret", transport.DefaultOptions()).Supplier(context.Background())
	require.NoError(t, err)
	assert.NoError(t, conn.Close())
}

func TestCreateClusterDirectIsLazy(t *testing.T) {
	addrs, err := address.Resolve("10.0.0.1:6379,10.0.0.2:6379")
	require.NoError(t, err)

	src := Factory{Pooling: false}.CreateCluster(addrs, "", transport.DefaultOptions())
	require.NotNil(t, src.Direct)
	defer src.Direct.Close()

	assert.Equal(t, KindCluster, src.Direct.Kind())
	client, ok := src.Direct.Cluster()
	require.True(t, ok)
	assert.Equal(t, []string{"10.0.0.1:6379", "10.0.0.2:6379"}, client.Options().Addrs)
	_, ok = src.Direct.Standalone()
	assert.False(t, ok)
}

func TestCreateClusterPooled(t *testing.T) {
	addrs, err := address.Resolve("10.0.0.1:6379,10.0.0.2:6379")
	require.NoError(t, err)

	src := Factory{Pooling: true}.CreateCluster(addrs, "", transport.DefaultOptions())
	assert.Nil(t, src.Direct)
	assert.NotNil(t, src.Supplier)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "standalone", KindStandalone.String())
	assert.Equal(t, "cluster", KindCluster.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
