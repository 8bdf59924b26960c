package zerolog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options controls how the console logger is built
type Options struct {
	Level          string
	DateTimeLayout string
	Colored        bool
	JSON           bool
	Output         io.Writer // defaults to os.Stdout
}

// New creates a zerolog logger writing either JSON lines or the coloured
// console layout ([time] [LVL] [file:line] > message fields)
func New(opts Options) (*zerolog.Logger, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	if opts.JSON {
		logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
		return &logger, nil
	}

	output := zerolog.ConsoleWriter{
		Out:             out,
		NoColor:         !opts.Colored,
		TimeFormat:      opts.DateTimeLayout,
		FormatLevel:     formatLevel(opts.Colored),
		FormatMessage:   formatMessage,
		FormatCaller:    formatCaller,
		FormatTimestamp: formatTimestamp(opts.DateTimeLayout),
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()

	return &logger, nil
}

func formatLevel(colored bool) zerolog.Formatter {
	return func(i interface{}) string {
		levelStr, ok := i.(string)
		if !ok {
			return "[UNK]"
		}

		tag, paint := levelTag(levelStr)
		if !colored {
			return tag
		}
		return paint(tag)
	}
}

func levelTag(level string) (string, func(string, ...interface{}) string) {
	switch level {
	case zerolog.LevelTraceValue:
		return "[TRC]", term.Cyanf
	case zerolog.LevelDebugValue:
		return "[DBG]", term.Cyanf
	case zerolog.LevelInfoValue:
		return "[INF]", term.Greenf
	case zerolog.LevelWarnValue:
		return "[WAR]", term.Yellowf
	case zerolog.LevelPanicValue:
		return "[PAN]", term.Redf
	case zerolog.LevelFatalValue:
		return "[FTL]", term.Redf
	case zerolog.LevelErrorValue:
		return "[ERR]", term.Redf
	default:
		return "[UNK]", term.Whitef
	}
}

func formatMessage(i interface{}) string {
	const maxSize = 60

	msg, ok := i.(string)
	if !ok || len(msg) == 0 {
		return ">"
	}

	if len(msg) > maxSize {
		msg = msg[:maxSize]
	}

	return fmt.Sprintf("> %-*s", maxSize, msg)
}

func formatCaller(i interface{}) string {
	const maxFileSize = 18
	const maxLineSize = 4

	fname, ok := i.(string)
	if !ok || len(fname) == 0 {
		return ""
	}

	fileBase, line, found := strings.Cut(filepath.Base(fname), ":")
	if !found {
		return fileBase
	}

	if len(fileBase) > maxFileSize {
		fileBase = fileBase[:maxFileSize]
	}
	if len(line) > maxLineSize {
		line = line[len(line)-maxLineSize:]
	}

	return fmt.Sprintf("[%-*s:%*s]", maxFileSize, fileBase, maxLineSize, line)
}

func formatTimestamp(layout string) zerolog.Formatter {
	return func(i interface{}) string {
		strTime, ok := i.(string)
		if !ok {
			return fmt.Sprintf("[%v]", i)
		}

		if ts, err := time.ParseInLocation(time.RFC3339, strTime, time.Local); err == nil {
			strTime = ts.In(time.Local).Format(layout)
		}

		return "[" + strTime + "]"
	}
}
