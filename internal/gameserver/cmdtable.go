package gameserver

import "github.com/cory-johannsen/circlemud/internal/game/world"

const (
	dead     = world.PosDead
	sleeping = world.PosSleeping
	resting  = world.PosResting
	sitting  = world.PosSitting
	fighting = world.PosFighting
	standing = world.PosStanding

	immort = world.LvlImmort
	god    = world.LvlGod
	grgod  = world.LvlGrGod
	impl   = world.LvlImpl
)

// social is a table entry for a social that takes its messages from the
// socials file.
func social(name string, pos world.Position, level int) Command {
	return Command{Name: name, MinPos: pos, Handler: doAction, MinLevel: level, Social: true}
}

// buildCommandTable returns the command table in priority order: an
// abbreviation runs the first entry it matches. The movement commands
// follow the reserved entry in direction order.
func buildCommandTable() []Command {
	return []Command{
		{Name: "RESERVED", MinPos: dead, MinLevel: -1},

		{"north", standing, doMove, 0, int(world.North), false},
		{"east", standing, doMove, 0, int(world.East), false},
		{"south", standing, doMove, 0, int(world.South), false},
		{"west", standing, doMove, 0, int(world.West), false},
		{"up", standing, doMove, 0, int(world.Up), false},
		{"down", standing, doMove, 0, int(world.Down), false},

		{"at", dead, doAt, immort, 0, false},
		{"advance", dead, doAdvance, impl, 0, false},
		{"alias", dead, doAlias, 0, 0, false},
		social("accuse", sitting, 0),
		social("applaud", resting, 0),
		{"assist", fighting, nil, 1, 0, false},
		{"ask", resting, doSpecComm, 0, scmdAsk, false},
		{"autoexit", dead, doGenTog, 0, scmdAutoExit, false},

		social("bounce", standing, 0),
		{"backstab", standing, nil, 1, 0, false},
		{"ban", dead, doBan, grgod, 0, false},
		{"bash", fighting, nil, 1, 0, false},
		social("beg", resting, 0),
		social("bleed", resting, 0),
		social("blush", resting, 0),
		social("bow", standing, 0),
		social("brb", resting, 0),
		{"brief", dead, doGenTog, 0, scmdBrief, false},
		social("burp", resting, 0),

		{"cast", sitting, nil, 1, 0, false},
		social("cackle", resting, 0),
		{"check", standing, doNotHere, 1, 0, false},
		social("chuckle", resting, 0),
		social("clap", resting, 0),
		{"clear", dead, doGenPS, 0, scmdClear, false},
		{"close", sitting, doGenDoor, 0, scmdClose, false},
		{"cls", dead, doGenPS, 0, scmdClear, false},
		social("comfort", resting, 0),
		social("comb", resting, 0),
		{"commands", dead, doCommands, 0, scmdCommands, false},
		{"compact", dead, doGenTog, 0, scmdCompact, false},
		social("cough", resting, 0),
		{"credits", dead, doGenPS, 0, scmdCredits, false},
		social("cringe", resting, 0),
		social("cry", resting, 0),
		social("cuddle", resting, 0),
		social("curse", resting, 0),
		social("curtsey", standing, 0),

		social("dance", standing, 0),
		{"date", dead, doDate, immort, scmdDate, false},
		social("daydream", sleeping, 0),
		{"dc", dead, doDC, god, 0, false},
		{"diagnose", resting, doDiagnose, 0, 0, false},
		{"display", dead, doDisplay, 0, 0, false},
		{"drop", resting, doDrop, 0, scmdDrop, false},
		social("drool", resting, 0),

		{"echo", sleeping, doEcho, immort, scmdEcho, false},
		{"emote", resting, doEcho, 1, scmdEmote, false},
		{":", resting, doEcho, 1, scmdEmote, false},
		social("embrace", standing, 0),
		{"equipment", sleeping, doEquipment, 0, 0, false},
		{"exits", resting, doExits, 0, 0, false},
		{"examine", sitting, doExamine, 0, 0, false},

		{"force", sleeping, doForce, god, 0, false},
		social("fart", resting, 0),
		{"flee", fighting, nil, 1, 0, false},
		social("flip", standing, 0),
		social("flirt", resting, 0),
		{"follow", resting, doFollow, 0, 0, false},
		social("fondle", resting, 0),
		{"freeze", dead, doWizutil, world.LvlFreeze, scmdFreeze, false},
		social("french", resting, 0),
		social("frown", resting, 0),
		social("fume", resting, 0),

		{"get", resting, doGet, 0, 0, false},
		social("gasp", resting, 0),
		{"gecho", dead, doGecho, god, 0, false},
		{"give", resting, doGive, 0, 0, false},
		social("giggle", resting, 0),
		social("glare", resting, 0),
		{"goto", sleeping, doGoto, immort, 0, false},
		{"gold", resting, doGold, 0, 0, false},
		{"gossip", sleeping, doGenComm, 0, scmdGossip, false},
		{"group", resting, doGroup, 1, 0, false},
		{"grab", resting, doGrab, 0, 0, false},
		social("greet", resting, 0),
		social("grin", resting, 0),
		social("groan", resting, 0),
		social("grope", resting, 0),
		social("grovel", resting, 0),
		social("growl", resting, 0),

		{"handbook", dead, doGenPS, immort, scmdHandbook, false},
		social("hiccup", resting, 0),
		{"hit", fighting, nil, 0, 0, false},
		{"hold", resting, doGrab, 1, 0, false},
		{"holler", resting, doGenComm, 1, scmdHoller, false},
		{"holylight", dead, doGenTog, immort, scmdHolylight, false},
		social("hop", resting, 0),
		social("hug", resting, 0),

		{"inventory", dead, doInventory, 0, 0, false},
		{"imotd", dead, doGenPS, immort, scmdImotd, false},
		{"immlist", dead, doGenPS, 0, scmdImmlist, false},
		{"info", sleeping, doGenPS, 0, scmdInfo, false},
		{"invis", dead, doInvis, immort, 0, false},

		{"junk", resting, doDrop, 0, scmdJunk, false},

		{"kill", fighting, nil, 0, 0, false},
		{"kick", fighting, nil, 1, 0, false},
		social("kiss", resting, 0),

		{"look", resting, doLook, 0, scmdLook, false},
		social("laugh", resting, 0),
		{"last", dead, doLast, god, 0, false},
		social("lick", resting, 0),
		{"lock", sitting, doGenDoor, 0, scmdLock, false},
		{"load", dead, doLoad, god, 0, false},
		social("love", resting, 0),

		social("moan", resting, 0),
		{"motd", dead, doGenPS, 0, scmdMotd, false},
		{"mail", standing, doNotHere, 1, 0, false},
		social("massage", resting, 0),
		{"mute", dead, doWizutil, god, scmdSquelch, false},

		{"news", sleeping, doGenPS, 0, scmdNews, false},
		social("nibble", resting, 0),
		social("nod", resting, 0),
		{"nogossip", dead, doGenTog, 0, scmdNoGossip, false},
		{"nohassle", dead, doGenTog, immort, scmdNoHassle, false},
		{"norepeat", dead, doGenTog, 0, scmdNoRepeat, false},
		{"noshout", sleeping, doGenTog, 1, scmdDeaf, false},
		{"nosummon", dead, doGenTog, 1, scmdNoSummon, false},
		{"notell", dead, doGenTog, 1, scmdNoTell, false},
		{"notitle", dead, doWizutil, god, scmdNoTitle, false},
		{"nowiz", dead, doGenTog, immort, scmdNoWiz, false},
		social("nudge", resting, 0),
		social("nuzzle", resting, 0),

		{"open", sitting, doGenDoor, 0, scmdOpen, false},

		{"put", resting, doPut, 0, 0, false},
		social("pat", resting, 0),
		{"page", dead, doPage, god, 0, false},
		{"pardon", dead, doWizutil, god, scmdPardon, false},
		social("peer", resting, 0),
		social("point", resting, 0),
		social("poke", resting, 0),
		{"policy", dead, doGenPS, 0, scmdPolicies, false},
		social("ponder", resting, 0),
		{"poofin", dead, doPoofset, immort, scmdPoofIn, false},
		{"poofout", dead, doPoofset, immort, scmdPoofOut, false},
		social("pout", resting, 0),
		{"prompt", dead, doDisplay, 0, 0, false},
		social("pray", sitting, 0),
		social("puke", resting, 0),
		social("punch", resting, 0),
		social("purr", resting, 0),
		{"purge", dead, doPurge, god, 0, false},

		{"quest", dead, doGenTog, 0, scmdQuest, false},
		{"qui", dead, doQuit, 0, scmdQui, false},
		{"quit", dead, doQuit, 0, scmdQuit, false},

		{"reply", sleeping, doReply, 0, 0, false},
		{"rest", resting, doRest, 0, 0, false},
		{"read", resting, doLook, 0, scmdRead, false},
		{"reload", dead, doReload, impl, 0, false},
		{"receive", standing, doNotHere, 1, 0, false},
		{"remove", resting, doRemove, 0, 0, false},
		{"restore", dead, doRestore, god, 0, false},
		{"return", dead, doReturn, 0, 0, false},
		social("roll", resting, 0),
		{"roomflags", dead, doGenTog, immort, scmdRoomFlags, false},
		social("ruffle", standing, 0),

		{"say", resting, doSay, 0, 0, false},
		{"'", resting, doSay, 0, 0, false},
		{"save", sleeping, doSave, 0, 0, false},
		{"score", dead, doScore, 0, 0, false},
		social("scream", resting, 0),
		{"send", sleeping, doSend, god, 0, false},
		{"shout", resting, doGenComm, 0, scmdShout, false},
		social("shake", resting, 0),
		social("shiver", resting, 0),
		social("shrug", resting, 0),
		{"shutdow", dead, doShutdown, impl, 0, false},
		{"shutdown", dead, doShutdown, impl, scmdShutdown, false},
		social("sigh", resting, 0),
		social("sing", resting, 0),
		{"sit", resting, doSit, 0, 0, false},
		{"sleep", sleeping, doSleep, 0, 0, false},
		social("slap", resting, 0),
		{"slowns", dead, doGenTog, impl, scmdSlowNS, false},
		social("smile", resting, 0),
		social("smirk", resting, 0),
		social("snicker", resting, 0),
		social("snap", resting, 0),
		social("snarl", resting, 0),
		social("sneeze", resting, 0),
		social("sniff", resting, 0),
		social("snore", sleeping, 0),
		social("snowball", standing, immort),
		{"snoop", dead, doSnoop, god, 0, false},
		social("snuggle", resting, 0),
		{"socials", dead, doCommands, 0, scmdSocials, false},
		social("spank", resting, 0),
		social("spit", standing, 0),
		social("squeeze", resting, 0),
		{"stand", resting, doStand, 0, 0, false},
		social("stare", resting, 0),
		{"stat", dead, doStat, immort, 0, false},
		social("steam", resting, 0),
		social("stroke", resting, 0),
		social("strut", standing, 0),
		social("sulk", resting, 0),
		{"switch", dead, doSwitch, grgod, 0, false},
		{"syslog", dead, doSyslog, immort, 0, false},

		{"tell", dead, doTell, 0, 0, false},
		social("tackle", resting, 0),
		{"take", resting, doGet, 0, 0, false},
		social("tango", standing, 0),
		social("taunt", resting, 0),
		{"teleport", dead, doTeleport, god, 0, false},
		social("thank", resting, 0),
		social("think", resting, 0),
		{"thaw", dead, doWizutil, world.LvlFreeze, scmdThaw, false},
		{"title", dead, doTitle, 0, 0, false},
		social("tickle", resting, 0),
		{"time", dead, doTime, 0, 0, false},
		{"track", standing, doTrack, 0, 0, false},
		{"trackthru", dead, doGenTog, impl, scmdTrack, false},
		{"transfer", sleeping, doTrans, god, 0, false},
		social("twiddle", resting, 0),

		{"unlock", sitting, doGenDoor, 0, scmdUnlock, false},
		{"unban", dead, doUnban, grgod, 0, false},
		{"unaffect", dead, doWizutil, god, scmdUnaffect, false},
		{"uptime", dead, doDate, immort, scmdUptime, false},
		{"users", dead, doUsers, immort, 0, false},

		{"version", dead, doGenPS, 0, scmdVersion, false},

		{"wake", sleeping, doWake, 0, 0, false},
		social("wave", resting, 0),
		{"wear", resting, doWear, 0, 0, false},
		{"weather", resting, doWeather, 0, 0, false},
		{"who", dead, doWho, 0, 0, false},
		{"whoami", dead, doGenPS, 0, scmdWhoami, false},
		{"where", resting, doWhere, 1, 0, false},
		{"whisper", resting, doSpecComm, 0, scmdWhisper, false},
		social("whine", resting, 0),
		social("whistle", resting, 0),
		{"wield", resting, doWield, 0, 0, false},
		social("wiggle", standing, 0),
		social("wink", resting, 0),
		{"wiznet", dead, doWiznet, immort, 0, false},
		{";", dead, doWiznet, immort, 0, false},
		{"wizhelp", sleeping, doCommands, immort, scmdWizhelp, false},
		{"wizlist", dead, doGenPS, 0, scmdWizlist, false},
		{"wizlock", dead, doWizlock, impl, 0, false},
		social("worship", resting, 0),
		{"write", standing, doNotHere, 1, 0, false},

		social("yawn", resting, 0),
		social("yodel", resting, 0),

		{"zreset", dead, doZreset, grgod, 0, false},
	}
}
