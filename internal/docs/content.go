package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with darsum",
		Content: topicQuickstart,
	},
	{
		Name:    "workflow",
		Title:   "Analysis Workflow",
		Summary: "What analyze, parse, and question actually do",
		Content: topicWorkflow,
	},
	{
		Name:    "format",
		Title:   "Log Format",
		Summary: "The darshan-parser text shape darsum understands",
		Content: topicFormat,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "darsum.yaml fields and defaults",
		Content: topicConfig,
	},
	{
		Name:    "output",
		Title:   "Output Directory",
		Summary: "Artifacts darsum writes and how to reuse them",
		Content: topicOutput,
	},
}

const topicQuickstart = `Quick Start
===========

1. Make sure darshan-parser and the claude CLI are on your PATH.

2. Optionally create a config:

    darsum init

   This writes darsum.yaml with the default settings ready to edit.

3. Analyze a log:

    darsum analyze my_app.darshan

   darsum dumps the log to text, restructures it into per-module CSV
   tables, then runs an agent session over the data and writes an
   analysis transcript plus a summary.

4. Ask follow-up questions against the same directory later:

    darsum question ./darshan_analysis_my_app "Which files dominate write time?"

If you only want the tables and no analysis, use:

    darsum parse my_app.darshan
`

const topicWorkflow = `Analysis Workflow
=================

darsum analyze runs three steps:

  STEP 1: Parse
    Invokes 'darshan-parser --show-incomplete <log>' and restructures its
    text output into header.txt plus one CSV table and one description
    file per Darshan module (see 'darsum docs format' and
    'darsum docs output').

  STEP 2: Analyze
    Starts a 'claude -p' session in the output directory. The prompt
    tells the agent how the data files are laid out and gives it Python
    code that loads every table with pandas. The agent runs its analysis
    code directly in that directory. The full transcript is saved as
    analysis.md.

  STEP 3: Summarize
    A second agent session condenses the transcript into summary.txt,
    focused on findings relevant to file system tuning.

darsum parse runs only STEP 1.

darsum question skips parsing entirely: it enumerates the module tables
already present in an output directory and runs one agent session to
answer your question against them.

There is no retry logic anywhere: a failing step aborts the run with the
underlying error. Artifacts written before the failure are left intact
(every file is written atomically), so a re-run simply overwrites them.
`

const topicFormat = `Log Format
==========

darsum consumes the text emitted by darshan-parser, which has three
kinds of content:

  Header
    Everything before the line containing "log file regions": run name,
    wall time, process count, and other metadata. Stored verbatim in
    header.txt.

  Module sections
    Each Darshan module (POSIX, MPIIO, STDIO, LUSTRE, ...) appears as:

      # POSIX module data        <- opens the descriptive block
      # comment lines...         <- the module's description
      #<module> <rank> <record id> <counter> <value> <file name> ...
      POSIX 0 12345 POSIX_OPENS 16 /scratch/out.dat ...
      POSIX 0 12345 POSIX_READS 42 /scratch/out.dat ...
                                 <- blank line ends the section

    The #<module> line defines the column names; spaces inside a name
    become underscores. Each data row is one counter observation. A
    module emitted in several separate blocks is merged into one table.

  Boilerplate
    A fixed set of darshan-runtime warning lines (the "incomplete data"
    notice) is recognized and dropped everywhere.

Each module's rows are then pivoted from one-row-per-counter into
one-row-per-record: the grouping key is every column except counter and
value, and each distinct counter becomes its own column.
`

const topicConfig = `Configuration Reference
=======================

darsum looks for darsum.yaml in the working directory and its parents.
Without one, defaults apply. All fields are optional.

model: sonnet
    Agent model for analysis and questions: opus, sonnet, or haiku.
    Overridable per run with --model.

parser-bin: darshan-parser
    Binary used to dump .darshan logs to text.

parser-timeout: 5
    Minutes allowed for the dump tool. 0 disables the limit.

agent-timeout: 30
    Minutes allowed per agent invocation. 0 disables the limit.

tuning:
    Optional map of file system parameter names to descriptions, e.g.

        tuning:
          stripe_count: number of OSTs a file is striped across

    When present, the analysis prompt frames its findings around these
    parameters.
`

const topicOutput = `Output Directory
================

darsum analyze writes to darshan_analysis_<logname>/ (or --output-dir):

    header.txt                  verbatim log header
    <MODULE>.csv                wide-format table, one per module
    <MODULE>_description.txt    that module's comment block, verbatim
    analysis.md                 full analysis transcript
    summary.txt                 condensed findings
    darsum.log                  combined agent output across sessions
    session.json                run ID, source log, model, status

darsum parse writes only the first three artifact kinds, into
darshan_parsed_<logname>/ by default.

Module tables are the contract: 'darsum question' and 'darsum modules'
recover the module list purely from the *.csv files present, so the
directory remains usable after the source .darshan log is gone. Every
artifact write is atomic (temp file + rename); concurrent runs into the
same directory are not coordinated beyond last-writer-wins per file.
`
