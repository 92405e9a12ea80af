package manager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ValentinKolb/kvconn/lib/codec"
	"github.com/ValentinKolb/kvconn/lib/connector"
	"github.com/ValentinKolb/kvconn/lib/transport"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertNoneBorrowed checks that every executor call gave its connection back
func assertNoneBorrowed(t *testing.T, m *Manager[string, string]) {
	t.Helper()
	stats, ok := m.PoolStats()
	require.True(t, ok)
	assert.Equal(t, 0, stats.Active)
	assert.Equal(t, stats.Borrowed, stats.Returned)
}

func TestConnectionCommands(t *testing.T) {
	m, s := newTestManager(t, true)
	ctx := context.Background()
	cc := m.ConnectionCommands()

	pong, err := cc.Ping(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PONG", pong)

	echo, err := cc.Echo(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", echo)

	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))
	n, err := cc.DBSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assertNoneBorrowed(t, m)
}

func TestStringCommands(t *testing.T) {
	m, s := newTestManager(t, true)
	ctx := context.Background()
	sc := m.StringCommands()

	require.NoError(t, sc.SetEx(ctx, "ttl", "v", 10*time.Second))
	assert.Equal(t, 10*time.Second, s.TTL("ttl"))

	ok, err := sc.SetNX(ctx, "nx", "first", 0)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = sc.SetNX(ctx, "nx", "second", 0)
	require.NoError(t, err)
	assert.False(t, ok)
	s.CheckGet(t, "nx", "first")

	old, found, err := sc.GetSet(ctx, "nx", "third")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "first", old)

	_, found, err = sc.GetSet(ctx, "fresh", "x")
	require.NoError(t, err)
	assert.False(t, found)

	v, found, err := sc.GetDel(ctx, "nx")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "third", v)
	assert.False(t, s.Exists("nx"))

	values, err := sc.MGet(ctx, "fresh", "missing", "ttl")
	require.NoError(t, err)
	assert.Equal(t, []Value[string]{
		{Value: "x", Found: true},
		{},
		{Value: "v", Found: true},
	}, values)

	n, err := sc.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = sc.IncrBy(ctx, "counter", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	n, err = sc.Decr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
	n, err = sc.DecrBy(ctx, "counter", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	n, err = sc.Append(ctx, "fresh", "yz")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	n, err = sc.StrLen(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	assertNoneBorrowed(t, m)
}

func TestKeyCommands(t *testing.T) {
	m, s := newTestManager(t, true)
	ctx := context.Background()
	kc := m.KeyCommands()

	_, found, err := kc.RandomKey(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set("user:1", "a"))
	require.NoError(t, s.Set("user:2", "b"))
	s.HSet("hash", "f", "v")

	n, err := kc.Exists(ctx, "user:1", "user:2", "nope")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ok, err := kc.Expire(ctx, "user:1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	ttl, err := kc.TTL(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	ok, err = kc.Persist(ctx, "user:1")
	require.NoError(t, err)
	assert.True(t, ok)
	ttl, err = kc.TTL(ctx, "user:1")
	require.NoError(t, err)
	assert.Less(t, ttl, time.Duration(0))

	typ, err := kc.Type(ctx, "hash")
	require.NoError(t, err)
	assert.Equal(t, "hash", typ)
	typ, err = kc.Type(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, "string", typ)

	require.NoError(t, kc.Rename(ctx, "user:2", "user:3"))
	s.CheckGet(t, "user:3", "b")

	keys, err := kc.Keys(ctx, "user:*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user:1", "user:3"}, keys)

	key, found, err := kc.RandomKey(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Contains(t, []string{"user:1", "user:3", "hash"}, key)

	n, err = kc.Del(ctx, "user:1", "user:3", "nope")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assertNoneBorrowed(t, m)
}

func TestHashCommands(t *testing.T) {
	m, _ := newTestManager(t, true)
	ctx := context.Background()
	hc := m.HashCommands()

	added, err := hc.HSet(ctx, "h", "a", "1")
	require.NoError(t, err)
	assert.True(t, added)
	added, err = hc.HSet(ctx, "h", "a", "2")
	require.NoError(t, err)
	assert.False(t, added)

	ok, err := hc.HSetNX(ctx, "h", "a", "3")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = hc.HSetNX(ctx, "h", "b", "3")
	require.NoError(t, err)
	assert.True(t, ok)

	v, found, err := hc.HGet(ctx, "h", "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2", v)
	_, found, err = hc.HGet(ctx, "h", "nope")
	require.NoError(t, err)
	assert.False(t, found)

	values, err := hc.HMGet(ctx, "h", "b", "nope")
	require.NoError(t, err)
	assert.Equal(t, []Value[string]{{Value: "3", Found: true}, {}}, values)

	all, err := hc.HGetAll(ctx, "h")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "2", "b": "3"}, all)

	fields, err := hc.HKeys(ctx, "h")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, fields)

	vals, err := hc.HVals(ctx, "h")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2", "3"}, vals)

	n, err := hc.HLen(ctx, "h")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ok, err = hc.HExists(ctx, "h", "b")
	require.NoError(t, err)
	assert.True(t, ok)

	n, err = hc.HIncrBy(ctx, "h", "counter", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	n, err = hc.HDel(ctx, "h", "a", "nope")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assertNoneBorrowed(t, m)
}

func TestSetCommands(t *testing.T) {
	m, _ := newTestManager(t, true)
	ctx := context.Background()
	sc := m.SetCommands()

	n, err := sc.SAdd(ctx, "s1", "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	_, err = sc.SAdd(ctx, "s2", "b", "c", "d")
	require.NoError(t, err)

	ok, err := sc.SIsMember(ctx, "s1", "a")
	require.NoError(t, err)
	assert.True(t, ok)

	n, err = sc.SCard(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	members, err := sc.SMembers(ctx, "s1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, members)

	diff, err := sc.SDiff(ctx, "s1", "s2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a"}, diff)
	inter, err := sc.SInter(ctx, "s1", "s2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c"}, inter)
	union, err := sc.SUnion(ctx, "s1", "s2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, union)

	n, err = sc.SRem(ctx, "s1", "a", "nope")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	member, found, err := sc.SRandMember(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Contains(t, []string{"b", "c"}, member)

	member, found, err = sc.SPop(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Contains(t, []string{"b", "c"}, member)

	_, found, err = sc.SPop(ctx, "empty")
	require.NoError(t, err)
	assert.False(t, found)

	assertNoneBorrowed(t, m)
}

func TestListCommands(t *testing.T) {
	m, _ := newTestManager(t, true)
	ctx := context.Background()
	lc := m.ListCommands()

	n, err := lc.RPush(ctx, "l", "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	n, err = lc.LPush(ctx, "l", "z")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	all, err := lc.LRange(ctx, "l", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "b", "c"}, all)

	v, found, err := lc.LIndex(ctx, "l", 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a", v)
	_, found, err = lc.LIndex(ctx, "l", 10)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, lc.LSet(ctx, "l", 1, "A"))

	n, err = lc.LInsert(ctx, "l", true, "b", "before-b")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	n, err = lc.LInsert(ctx, "l", false, "nope", "x")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), n)

	n, err = lc.LRem(ctx, "l", 0, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = lc.LLen(ctx, "l")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	v, _, err = lc.LPop(ctx, "l")
	require.NoError(t, err)
	assert.Equal(t, "z", v)
	v, _, err = lc.RPop(ctx, "l")
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	all, err = lc.LRange(ctx, "l", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "before-b"}, all)

	_, found, err = lc.LPop(ctx, "empty")
	require.NoError(t, err)
	assert.False(t, found)

	assertNoneBorrowed(t, m)
}

func TestSortedSetCommands(t *testing.T) {
	m, _ := newTestManager(t, true)
	ctx := context.Background()
	zc := m.SortedSetCommands()

	n, err := zc.ZAdd(ctx, "z",
		ScoredMember[string]{Score: 1, Member: "one"},
		ScoredMember[string]{Score: 2, Member: "two"},
		ScoredMember[string]{Score: 3, Member: "three"},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	score, found, err := zc.ZScore(ctx, "z", "two")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2.0, score)
	_, found, err = zc.ZScore(ctx, "z", "nope")
	require.NoError(t, err)
	assert.False(t, found)

	rank, found, err := zc.ZRank(ctx, "z", "three")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(2), rank)
	rank, _, err = zc.ZRevRank(ctx, "z", "three")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rank)
	_, found, err = zc.ZRank(ctx, "z", "nope")
	require.NoError(t, err)
	assert.False(t, found)

	members, err := zc.ZRange(ctx, "z", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, members)

	newScore, err := zc.ZIncrBy(ctx, "z", 5, "one")
	require.NoError(t, err)
	assert.Equal(t, 6.0, newScore)

	scored, err := zc.ZRangeWithScores(ctx, "z", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []ScoredMember[string]{
		{Score: 2, Member: "two"},
		{Score: 3, Member: "three"},
		{Score: 6, Member: "one"},
	}, scored)

	n, err = zc.ZCard(ctx, "z")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = zc.ZCount(ctx, "z", "(2", "+inf")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = zc.ZRem(ctx, "z", "two", "nope")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assertNoneBorrowed(t, m)
}

type user struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestJSONCodecRoundTrip(t *testing.T) {
	s := miniredis.RunT(t)
	m := NewManager(codec.NewJSONCodec[user](), false, true)
	require.NoError(t, m.Init(s.Addr(), "", transport.DefaultOptions()))
	defer m.Close(context.Background())
	ctx := context.Background()

	require.NoError(t, m.StringCommands().Set(ctx, "u", user{Name: "ada", Age: 36}))
	s.CheckGet(t, "u", `{"name":"ada","age":36}`)

	u, found, err := m.StringCommands().Get(ctx, "u")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, user{Name: "ada", Age: 36}, u)

	// values that are not json fail with a codec error
	require.NoError(t, s.Set("broken", "{"))
	_, _, err = m.StringCommands().Get(ctx, "broken")
	assert.True(t, errors.Is(err, connector.ErrCodec))
}

// failingCodec refuses to encode keys
type failingCodec struct {
	codec.Codec[string, string]
}

func (failingCodec) EncodeKey(string) (string, error) {
	return "", errors.New("unsupported key")
}

func TestCodecErrorDoesNotBorrow(t *testing.T) {
	s := miniredis.RunT(t)
	m := NewManager[string, string](failingCodec{codec.NewStringCodec()}, false, true)
	require.NoError(t, m.Init(s.Addr(), "", transport.DefaultOptions()))
	defer m.Close(context.Background())

	err := m.StringCommands().Set(context.Background(), "k", "v")
	require.Error(t, err)
	assert.True(t, errors.Is(err, connector.ErrCodec))

	stats, _ := m.PoolStats()
	assert.Equal(t, uint64(0), stats.Borrowed)
}
