package rawvol

import (
	"fmt"

	. "github.com/janelia-flyem/go/gocheck"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Logf(severity ModeFlag, format string, args ...interface{}) {
	r.lines = append(r.lines, severity.String()+" "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Shutdown() {}

type LogSuite struct {
	rec      *recordingLogger
	prev     Logger
	prevMode ModeFlag
}

var _ = Suite(&LogSuite{})

func (s *LogSuite) SetUpTest(c *C) {
	s.rec = &recordingLogger{}
	s.prev = SetLogger(s.rec)
	s.prevMode = LogMode()
}

func (s *LogSuite) TearDownTest(c *C) {
	SetLogger(s.prev)
	SetLogMode(s.prevMode)
	Verbose = false
}

func (s *LogSuite) TestThreshold(c *C) {
	SetLogMode(WarningMode)
	Debugf("debug")
	Infof("info")
	Warningf("warning %d", 1)
	Errorf("error")
	Criticalf("critical")
	c.Assert(s.rec.lines, DeepEquals, []string{"WARNING warning 1", "ERROR error", "CRITICAL critical"})
}

func (s *LogSuite) TestVerbose(c *C) {
	SetLogMode(ErrorMode)
	Verbose = true
	Debugf("debug")
	Infof("info")
	c.Assert(s.rec.lines, DeepEquals, []string{"DEBUG debug"})

	SetLogMode(SilentMode)
	Debugf("debug")
	Criticalf("critical")
	c.Assert(s.rec.lines, HasLen, 1)
}

func (s *LogSuite) TestTimeLog(c *C) {
	SetLogMode(DebugMode)
	timedLog := NewTimeLog()
	timedLog.Infof("read %d rows", 10)
	c.Assert(s.rec.lines, HasLen, 1)
	c.Assert(s.rec.lines[0], Matches, "INFO read 10 rows: .+\n")
	c.Assert(timedLog.Elapsed() > 0, Equals, true)
}
