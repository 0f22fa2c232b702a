package catalog

// ToolName identifies an external tool family in the registry.
type ToolName string

// ActionName identifies an operation offered for a tool.
type ActionName string

// Registered tool families.
const (
	ToolMongo ToolName = ToolName("mongo")
	ToolRedis ToolName = ToolName("redis")
	ToolGit   ToolName = ToolName("git")
)

const (
	mongoListTemplateConstant         = `mongo {{dbname}} --quiet --eval "printjson(db.getCollectionNames())"`
	mongoCountTemplateConstant        = `mongo {{dbname}} --quiet --eval "printjson(db.getCollectionNames().forEach(function(coll){printjson(coll+"-"+db[coll].count())}))"`
	mongoDropTemplateConstant         = `mongo {{dbname}} --eval "db.getCollectionNames().forEach( function(coll) { if(coll!='system.indexes') { db[coll].drop(); db[coll].dropIndexes()}})"`
	redisCountTemplateConstant        = `redis-cli keys "*" | wc -l`
	redisClearTemplateConstant        = `redis-cli flushall`
	gitBranchTemplateConstant         = `git rev-parse --abbrev-ref HEAD`
	gitStatusQuietTemplateConstant    = `git fetch && git status -sb`
	gitStatusLongTemplateConstant     = `git fetch && git status`
	unimplementedTemplateConstant     = ""
	dirtyWorkingTreeConditionConstant = "if [ -n \"$(git status --porcelain)\" ]; then \n"
)

// Multi-line shell scripts are stored exactly as they are handed to the shell.
const (
	gitPorcelainTemplateConstant = dirtyWorkingTreeConditionConstant +
		"  echo >&2 \"$(git status -sb)\"; \n" +
		"  exit 1; \n" +
		"else \n" +
		"  echo \"CLEAN\"; \n" +
		"fi"
	gitPrePullTemplateConstant = dirtyWorkingTreeConditionConstant +
		"  echo >&2 \"ERROR: Working tree dirty, aborting pull.\"; \n" +
		"  exit 1; \n" +
		"else \n" +
		"  echo \"Working tree clean, pulling\"; \n" +
		"  git pull \n" +
		"fi"
)

// defaultTemplates returns a fresh copy of the built-in registry.
// Empty templates mark declared actions that have no implementation yet.
func defaultTemplates() map[ToolName]map[ActionName]string {
	return map[ToolName]map[ActionName]string{
		ToolMongo: {
			"list":     mongoListTemplateConstant,
			"count":    mongoCountTemplateConstant,
			"drop":     mongoDropTemplateConstant,
			"snapshot": unimplementedTemplateConstant,
			"restore":  unimplementedTemplateConstant,
		},
		ToolRedis: {
			"count": redisCountTemplateConstant,
			"clear": redisClearTemplateConstant,
		},
		ToolGit: {
			"branch":       gitBranchTemplateConstant,
			"status_quiet": gitStatusQuietTemplateConstant,
			"status_long":  gitStatusLongTemplateConstant,
			"peek":         unimplementedTemplateConstant,
			"porcelain":    gitPorcelainTemplateConstant,
			"prePull":      gitPrePullTemplateConstant,
		},
	}
}
