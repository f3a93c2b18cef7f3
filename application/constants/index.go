package constants

// faceclock response codes
// these consist of 4 digit numbers the frontend switches on
//
// the 1st 3 are randomly generated but represent specific scenarios
// 4th indicates if the response requires user interaction through a dialog
// box. 0 means it does not require. 1 means it requires.

var NO_FACE_MATCH uint = 4210        // no enrolled face within the acceptance threshold. offer enrollment
var AMBIGUOUS_FACE_MATCH uint = 4221 // more than one identity at the minimum distance. ask for a fresh capture
var BAD_CAPTURE uint = 4230          // no usable face or malformed descriptor in the payload
var SESSION_EXPIRED uint = 4410      // session missing or idle-expired. re-verify to continue
var ALREADY_CHECKED_IN uint = 6110   // a check-in already exists for today
var NOT_CHECKED_IN_YET uint = 6120   // check-out attempted before any check-in today
var ALREADY_CHECKED_OUT uint = 6130  // the day is already closed out
var IDENTITY_EXISTS uint = 9120      // employee code or email already enrolled

var DEFAULT_HISTORY_LIMIT int64 = 30
var MAX_HISTORY_LIMIT int64 = 120

var SUPPORT_EMAIL = "help@faceclock.io"
