package codegen

import "strings"

// renderRuntimePrologue assembles the fixed builtins (print, bash) plus
// exactly the flagged runtime helpers, per spec.md §4.6: "the helper
// prologue emits exactly the flagged helpers; unused helpers are omitted."
func (g *Generator) renderRuntimePrologue() string {
	var parts []string
	parts = append(parts, coreBuiltins)

	if g.flags.throwPanic {
		parts = append(parts, helperThrow, helperPanic)
	}
	if g.flags.fieldAccess {
		parts = append(parts, helperGetField, helperSetField)
	}
	if g.flags.methodDispatch {
		parts = append(parts, helperCallMethod)
	}
	if g.flags.execSpawn || g.flags.asyncExec {
		parts = append(parts, helperBuildCmd, helperPipeCmd)
	}
	if g.flags.execSpawn {
		parts = append(parts, helperExecCmd, helperSpawnCmd)
	}
	if g.flags.asyncExec {
		parts = append(parts, helperSpawnCmd, helperAsyncExecCmd, helperAsyncSpawnCmd, helperAwait)
	}
	if g.flags.mapOps {
		parts = append(parts, helperMapLiteral, helperMapNew, helperMapSet, helperMapGet)
	}
	if g.flags.indexOps {
		parts = append(parts, helperIndexGet, helperIndexSet, helperIndexOf)
	}
	if g.flags.readln {
		parts = append(parts, helperReadln)
	}

	return strings.Join(dedupHelpers(parts), "\n")
}

// dedupHelpers drops duplicate helper blocks (brash_spawn_cmd is pulled in
// by both the synchronous and async command-usage flags) while preserving
// first-seen order, so the emitted prologue never defines a shell function
// twice.
func dedupHelpers(parts []string) []string {
	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

const coreBuiltins = `print() {
    printf '%s\n' "$*"
}

bash() {
    eval "$1"
}
`

const helperThrow = `brash_throw() {
    printf '%s' "$1" >&2
    exit 1
}
`

const helperPanic = `brash_panic() {
    printf 'panic: %s\n' "$1" >&2
    exit 1
}
`

const helperGetField = `brash_get_field() {
    local __name="${1}_${2}"
    printf '%s' "${!__name-}"
}
`

const helperSetField = `brash_set_field() {
    local __name="${1}_${2}"
    printf -v "$__name" '%s' "$3"
}
`

const helperCallMethod = `brash_call_method() {
    local __obj="$1" __method="$2"
    shift 2
    local __type_var="${__obj}__type"
    local __type="${!__type_var}"
    "${__type}__${__method}" "$__obj" "$@"
}
`

const helperBuildCmd = `brash_build_cmd() {
    local __out="" __a
    for __a in "$@"; do
        __out+="$(printf '%q ' "$__a")"
    done
    printf '%s' "${__out% }"
}
`

const helperPipeCmd = `brash_pipe_cmd() {
    if [ "$#" -eq 1 ]; then
        eval "$1"
        return
    fi
    local __head="$1"
    shift
    eval "$__head" | brash_pipe_cmd "$@"
}
`

const helperExecCmd = `brash_exec_cmd() {
    eval "$1"
}
`

const helperSpawnCmd = `brash_spawn_cmd() {
    local __out __err __status __pid
    __out="$(mktemp)"
    __err="$(mktemp)"
    __status="$(mktemp)"
    ( eval "$1" >"$__out" 2>"$__err"; echo "$?" >"$__status" ) &
    __pid=$!
    printf '%s:%s:%s:%s' "$__pid" "$__out" "$__err" "$__status"
}
`

const helperAsyncExecCmd = `brash_async_exec_cmd() {
    brash_spawn_cmd "$1"
}
`

const helperAsyncSpawnCmd = `brash_async_spawn_cmd() {
    brash_spawn_cmd "$1"
}
`

const helperAwait = `brash_await() {
    local __pid __out __err __status
    IFS=':' read -r __pid __out __err __status <<< "$1"
    while kill -0 "$__pid" 2>/dev/null; do
        sleep 0.05
    done
    wait "$__pid" 2>/dev/null || true
    cat "$__out" 2>/dev/null
    return "$(cat "$__status" 2>/dev/null || echo 0)"
}
`

const helperMapLiteral = `brash_map_literal() {
    local __f
    __f="$(mktemp)"
    while [ "$#" -gt 0 ]; do
        printf '%s\t%s\n' "$1" "$2" >> "$__f"
        shift 2
    done
    printf '%s' "$__f"
}
`

const helperMapNew = `brash_map_new() {
    mktemp
}
`

const helperMapSet = `brash_map_set() {
    local __f="$1" __k="$2" __v="$3" __tmp
    __tmp="$(mktemp)"
    awk -F '\t' -v k="$__k" '$1 != k' "$__f" > "$__tmp" 2>/dev/null
    printf '%s\t%s\n' "$__k" "$__v" >> "$__tmp"
    mv "$__tmp" "$__f"
}
`

const helperMapGet = `brash_map_get() {
    local __f="$1" __k="$2"
    awk -F '\t' -v k="$__k" '$1 == k { print $2; found=1 } END { if (!found) exit 1 }' "$__f"
}
`

const helperIndexGet = `brash_index_get() {
    local -n __arr="$1"
    printf '%s' "${__arr[$2]}"
}
`

const helperIndexSet = `brash_index_set() {
    local -n __arr="$1"
    __arr[$2]="$3"
}
`

const helperIndexOf = `brash_index_of() {
    local __v="$1" __needle="$2" __pre
    __pre="${__v%%"$__needle"*}"
    if [ "$__pre" = "$__v" ]; then
        printf '%s' -1
    else
        printf '%s' "${#__pre}"
    fi
}
`

const helperReadln = `brash_readln() {
    local __line
    IFS= read -r __line
    printf '%s' "$__line"
}
`
