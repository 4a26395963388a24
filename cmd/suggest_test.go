package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

var testCommands = []cli.Command{
	{Name: "encrypt", Aliases: []string{"e"}},
	{Name: "decrypt", Aliases: []string{"d"}},
	{Name: "keygen"},
	{Name: "config", Aliases: []string{"cfg"}},
	{Name: "bench"},
}

func TestSimilarity(t *testing.T) {
	require.Equal(t, 1.0, similarity("", ""))
	require.Equal(t, 1.0, similarity("encrypt", "encrypt"))
	require.True(t, similarity("encrpyt", "encrypt") >= minSimilarity)
	require.True(t, similarity("Decrypt", "decrypt") >= minSimilarity)
	require.True(t, similarity("bench", "decrypt") < minSimilarity)
}

func TestRankCommands(t *testing.T) {
	ranked := rankCommands("decrpyt", testCommands)
	require.NotEmpty(t, ranked)
	require.Equal(t, "decrypt", ranked[0].name)

	for idx := 1; idx < len(ranked); idx++ {
		require.True(t, ranked[idx-1].score >= ranked[idx].score)
	}

	require.Empty(t, rankCommands("xyzzy", testCommands))
}

func TestRankCommandsSynonyms(t *testing.T) {
	ranked := rankCommands("genkey", testCommands)
	require.Len(t, ranked, 1)
	require.Equal(t, "keygen", ranked[0].name)

	ranked = rankCommands("speed", testCommands)
	require.Len(t, ranked, 1)
	require.Equal(t, "bench", ranked[0].name)
}

func TestRankCommandsOncePerCommand(t *testing.T) {
	// Both the name and the alias are close; only one entry is expected.
	ranked := rankCommands("cfgg", testCommands)
	require.Len(t, ranked, 1)
	require.Equal(t, "config", ranked[0].name)
}

func TestUnknownCommandSucceeds(t *testing.T) {
	withTestEnv(t, func(env testEnv) {
		require.Equal(t, Success, env.run("decrpyt"))
		require.Equal(t, Success, env.run("config", "lst"))
	})
}
