package protocol

// Topic namespace shared with the browser and AI clients. The prefix is kept
// for compatibility with the existing frontend message router.
const topicPrefix = "com.sc2ctl.jeopardy."

const (
	TopicRegisterPlayer         = topicPrefix + "register_player"
	TopicRegisterPlayerResponse = topicPrefix + "register_player_response"
	TopicPlayerList             = topicPrefix + "player_list"
	TopicGameReady              = topicPrefix + "game_ready"

	TopicSelectBoard          = topicPrefix + "select_board"
	TopicBoardSelected        = topicPrefix + "board_selected"
	TopicBoardInit            = topicPrefix + "board_init"
	TopicStartBoardGeneration = topicPrefix + "start_board_generation"
	TopicRevealCategory       = topicPrefix + "reveal_category"

	TopicQuestionDisplay = topicPrefix + "question_display"
	TopicQuestionDismiss = topicPrefix + "question_dismiss"
	TopicSelectQuestion  = topicPrefix + "select_question"

	TopicBuzzerStatus     = topicPrefix + "buzzer_status"
	TopicBuzzer           = topicPrefix + "buzzer"
	TopicAnswerTimerStart = topicPrefix + "answer_timer_start"
	TopicAnswer           = topicPrefix + "answer"

	TopicDailyDouble            = topicPrefix + "daily_double"
	TopicDailyDoubleBet         = topicPrefix + "daily_double_bet"
	TopicDailyDoubleBetResponse = topicPrefix + "daily_double_bet_response"

	TopicFinalJeopardy    = topicPrefix + "final_jeopardy"
	TopicFinalJeopardyBet = topicPrefix + "final_jeopardy_bet"

	TopicContestantScore = topicPrefix + "contestant_score"

	TopicPlayAudio     = topicPrefix + "play_audio"
	TopicAudioComplete = topicPrefix + "audio_complete"

	TopicChatMessage = topicPrefix + "chat_message"
	TopicChatHistory = topicPrefix + "chat_history"

	TopicError = topicPrefix + "error"
)
