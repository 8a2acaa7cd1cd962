package legacy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const zon30 = `#30
Northern Midgaard~
3000 3099 15 2
* the cityguard
M 0 3060 5 3001 	(the cityguard)
E 1 3022 100 16 	(a long sword)
G 1 3021 5 		(an iron key)
* the ghost of a mob that does not exist
M 0 3090 1 3001
G 1 3021 5
O 0 3099 1 3002 	(a bulletin board)
D 0 3001 1 1 	(temple door)
D 0 3002 3 2
S
$
`

const wld30 = `#3001
The Temple Of Midgaard~
   You are in the southern end of the temple hall.
~
30 de 0
D1
A door leads east.
~
door~
1 -1 3002
D4
~
~
0 -1 -1
E
paintings wall~
Gods, giants and peasants.
~
S
#3002
The Board Room~
   A small room full of notices.
~
30 d 0
D3
~
door~
1 -1 3001
D2
~
~
2 3021 3999
S
#3030
The Dump~
   Rubbish everywhere.
~
30 0 1
S
$~
`

const mob30 = `#3060
cityguard guard~
the cityguard~
A cityguard stands here.
~
A big, strong, helpful, trustworthy guard.
~
cdg 0 1000 S
10 10 1 1d12+123 1d8+0
15 9000
8 8 1
#3024
guard~
the guard of the clerics~
A guard blocks the way north.
~
He looks serene.
~
bp 0 900 E
33 0 -5 10d10+300 2d8+4
0 0
8 8 1
Str: 18
BareHandAttack: 4
E
$
`

const obj30 = `#3021
key iron~
an iron key~
An iron key lies here.~
~
18 0 a
0 0 0 0
1 5 1
#3022
sword long~
a long sword~
A long sword has been left here.~
~
5 b an
0 1 8 3
15 600 60
E
sword~
It is sharp.
~
A
18 2
#3099
board bulletin~
a bulletin board~
A bulletin board is mounted on a wall here.~
~
12 0 0
0 0 0 0
1000 0 0
$
`

// writeWorld lays the fixture out as a lib/world tree.
func writeWorld(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"zon/30.zon": zon30,
		"wld/30.wld": wld30,
		"mob/30.mob": mob30,
		"obj/30.obj": obj30,
	}
	for name, body := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return root
}
