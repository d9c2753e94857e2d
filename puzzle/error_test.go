package puzzle

import (
	"strings"
	"testing"
)

// Make sure error messages never panic and are never empty.  The
// testing of individual cases (and removal of unused errors) we
// leave to the functional testing done of other files.
func TestErrorNoPanicNoEmpty(t *testing.T) {
	defer (func() {
		if e := recover(); e != nil {
			t.Fatalf("Panic during testing: %v", e)
		}
	})()
	for sc := int(UnknownScope); sc <= int(MaxScope); sc++ {
		for st := int(UnknownStructure); st < int(MaxStructure); st++ {
			for at := int(UnknownAttribute); at < int(MaxAttribute); at++ {
				for co := int(UnknownCondition); co < int(MaxCondition); co++ {
					e := Error{
						Scope:     ErrorScope(sc),
						Structure: ErrorStructure(st),
						Attribute: ErrorAttribute(at),
						Condition: ErrorCondition(co),
					}
					m := e.Error()
					t.Log(m)
					if len(m) == 0 {
						t.Errorf("Empty error message for %+v", e)
					}
				}
			}
		}
	}
}

func TestErrorMessageOverride(t *testing.T) {
	e := Error{Scope: InternalScope, Message: "the works are gummed up"}
	if e.Error() != "the works are gummed up" {
		t.Errorf("canned message was not used: %q", e.Error())
	}
}

// Spot checks on the constructors: the message should mention
// the thing that went wrong.
func TestErrorConstructors(t *testing.T) {
	e := rangeError(ValueAttribute, 12, 0, 9)
	if e.Condition != TooLargeCondition {
		t.Errorf("rangeError(12) condition: %v", e.Condition)
	}
	if m := e.Error(); !strings.Contains(m, "12") || !strings.Contains(m, "at most 9") {
		t.Errorf("rangeError(12) message: %q", m)
	}
	e = rangeError(ValueAttribute, -1, 0, 9)
	if e.Condition != TooSmallCondition {
		t.Errorf("rangeError(-1) condition: %v", e.Condition)
	}
	if m := sizeError(80).Error(); !strings.Contains(m, "81") {
		t.Errorf("sizeError(80) message: %q", m)
	}
	gid := GroupID{GtypeBlock, 7}
	if m := groupError(gid, 4, NoGroupValueCondition).Error(); !strings.Contains(m, gid.String()) {
		t.Errorf("groupError message doesn't name the group: %q", m)
	}
	if m := squareError(33).Error(); !strings.Contains(m, "33") {
		t.Errorf("squareError(33) message: %q", m)
	}
}

func TestGroupErrorPanicsOnBadCondition(t *testing.T) {
	defer (func() {
		if e := recover(); e == nil {
			t.Errorf("no panic from a non-group condition")
		}
	})()
	groupError(GroupID{GtypeRow, 1}, 1, TooLargeCondition)
}
